package domain

import "time"

// Enumerations
const (
	RoleAdmin       UserRole = "admin"
	RoleManager     UserRole = "manager"
	RoleSalesperson UserRole = "salesperson"

	LogInfo    ActivityLogType = "info"
	LogWarning ActivityLogType = "warning"
	LogError   ActivityLogType = "error"

	// Visit actions as recorded by the field app.
	ActionVisite     VisitAction = "Visite"
	ActionAcheter    VisitAction = "Acheter"
	ActionRevisiter  VisitAction = "Revisiter"
	ActionContact    VisitAction = "Contact"
	ActionProspecter VisitAction = "Prospecter"

	GammeHaute        Gamme = "Haute"
	GammeHauteMoyenne Gamme = "Haute et Moyenne"
	GammeMoyenne      Gamme = "Moyenne"
	GammeEconomie     Gamme = "Économie"

	ClassLead        Classification = "Lead"
	ClassNouveau     Classification = "Nouveau Client"
	ClassActif       Classification = "Client Actif"
	ClassInactif     Classification = "Client Inactif"
	ClassStrategique Classification = "Client Stratégique"
	ClassBloque      Classification = "Client Bloqué"

	TierNone         CommissionTier = ""
	TierIntermediate CommissionTier = "Intermédiaire"
	TierConfirmed    CommissionTier = "Confirmé Plus"
	TierSenior       CommissionTier = "Sénior Expert"
	TierElite        CommissionTier = "Élite Diamant"
)

type UserRole string
type ActivityLogType string
type VisitAction string
type Gamme string
type Classification string
type CommissionTier string

type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	Region       string
	Role         UserRole
	IsGoogle     bool
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Customer is the identity entity. Soft-deleted, never hard-removed.
type Customer struct {
	ID         int64
	Name       string
	Manager    string
	City       string
	Region     string
	Address    string
	Mobile     string
	Mobile2    string
	Landline   string
	Email      string
	Gamme      Gamme
	OwnerEmail string
	Location   string
	Blocked    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// Visit is the append-only event entity. Fields change only through an
// explicit edit that rewrites them in place.
type Visit struct {
	ID               int64
	Code             string
	CustomerID       *int64
	CustomerName     string
	City             string
	Gamme            Gamme
	SalespersonEmail string
	Action           VisitAction
	// AppointmentDates may encode several dates in one string, separated
	// by commas or newlines.
	AppointmentDates string
	Note             string
	ContactChannel   string
	ContactSummary   string
	Price            float64
	Quantity         int
	PhotoRef         string
	// DisplayDate is the coarse date string shown by the app; CreatedAt
	// is preferred whenever present.
	DisplayDate string
	CreatedAt   *time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

type ActivityLog struct {
	ID       int64
	Title    string
	Message  string
	Actor    string
	Type     ActivityLogType
	LoggedAt time.Time
}

// Preference is one key-value row of per-user UI state (theme, font, ...).
type Preference struct {
	UserID    int64
	Key       string
	Value     string
	UpdatedAt time.Time
}
