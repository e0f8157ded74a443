// Package models defines the domain entities and enumerations for the
// BeeHive personal finance backend.
package models

import (
	"fmt"
	"strings"
	"time"
)

// AccountType categorizes a bank account.
type AccountType string

const (
	AccountCurrent     AccountType = "CURRENT"
	AccountSavings     AccountType = "SAVINGS"
	AccountInvestments AccountType = "INVESTMENTS"
	AccountClosed      AccountType = "CLOSED"
)

var validAccountTypes = map[AccountType]bool{
	AccountCurrent:     true,
	AccountSavings:     true,
	AccountInvestments: true,
	AccountClosed:      true,
}

// Valid reports whether the account type is one of the known values.
func (t AccountType) Valid() bool {
	return validAccountTypes[t]
}

// MovementType distinguishes money entering from money leaving an account.
type MovementType string

const (
	MovementIncome  MovementType = "INCOME"
	MovementExpense MovementType = "EXPENSE"
)

// Valid reports whether the movement type is INCOME or EXPENSE.
func (t MovementType) Valid() bool {
	return t == MovementIncome || t == MovementExpense
}

// MovementStatus tracks the lifecycle of a movement. Only CONFIRMED
// movements affect account balances.
type MovementStatus string

const (
	StatusPending   MovementStatus = "PENDING"
	StatusConfirmed MovementStatus = "CONFIRMED"
	StatusCancelled MovementStatus = "CANCELLED"
	StatusFailed    MovementStatus = "FAILED"
)

var validMovementStatuses = map[MovementStatus]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusCancelled: true,
	StatusFailed:    true,
}

// Valid reports whether the status is one of the known values.
func (s MovementStatus) Valid() bool {
	return validMovementStatuses[s]
}

// IsActive reports whether the status counts toward projections.
// CANCELLED and FAILED entries are ignored by forecasting logic.
func (s MovementStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// MovementRecurrence describes how often a planned entry repeats.
type MovementRecurrence string

const (
	RecurrenceDaily   MovementRecurrence = "DAILY"
	RecurrenceWeekly  MovementRecurrence = "WEEKLY"
	RecurrenceMonthly MovementRecurrence = "MONTHLY"
	RecurrenceCustom  MovementRecurrence = "CUSTOM"
)

var validRecurrences = map[MovementRecurrence]bool{
	RecurrenceDaily:   true,
	RecurrenceWeekly:  true,
	RecurrenceMonthly: true,
	RecurrenceCustom:  true,
}

// Valid reports whether the recurrence is one of the known values.
func (r MovementRecurrence) Valid() bool {
	return validRecurrences[r]
}

// MovementCategory classifies a movement for reporting and analytics.
type MovementCategory string

const (
	// Housing
	CategoryRent                       MovementCategory = "RENT"
	CategoryPropertyTaxes              MovementCategory = "PROPERTY_TAXES"
	CategoryHomeMaintenanceRepairs     MovementCategory = "HOME_MAINTENANCE_REPAIRS"
	CategoryHomeInsurance              MovementCategory = "HOME_INSURANCE"
	CategoryHouseholdSuppliesFurniture MovementCategory = "HOUSEHOLD_SUPPLIES_FURNITURE"

	// Transportation
	CategoryFuel             MovementCategory = "FUEL"
	CategoryPublicTransport  MovementCategory = "PUBLIC_TRANSPORT"
	CategoryUber             MovementCategory = "UBER"
	CategoryCarMaintenance   MovementCategory = "CAR_MAINTENANCE"
	CategoryParking          MovementCategory = "PARKING"
	CategoryVehicleInsurance MovementCategory = "VEHICLE_INSURANCE"
	CategoryTolls            MovementCategory = "TOLLS"

	// Shopping
	CategoryShopping        MovementCategory = "SHOPPING"
	CategoryClothing        MovementCategory = "CLOTHING"
	CategoryElectronics     MovementCategory = "ELECTRONICS"
	CategoryGifts           MovementCategory = "GIFTS"
	CategoryBeautyCosmetics MovementCategory = "BEAUTY_COSMETICS"

	// Food and dining
	CategoryGroceries   MovementCategory = "GROCERIES"
	CategoryRestaurants MovementCategory = "RESTAURANTS"
	CategoryFastFood    MovementCategory = "FAST_FOOD"
	CategoryCoffeeShops MovementCategory = "COFFEE_SHOPS"
	CategoryAlcoholBars MovementCategory = "ALCOHOL_BARS"
	CategoryFoodDrinks  MovementCategory = "FOOD_DRINKS"

	// Entertainment
	CategoryEntertainment MovementCategory = "ENTERTAINMENT"
	CategoryMovies        MovementCategory = "MOVIES"
	CategoryEvents        MovementCategory = "EVENTS"
	CategoryGames         MovementCategory = "GAMES"
	CategoryNightlife     MovementCategory = "NIGHTLIFE"
	CategoryHobbies       MovementCategory = "HOBBIES"
	CategoryGym           MovementCategory = "GYM"

	// Technology and services
	CategoryTech                  MovementCategory = "TECH"
	CategorySoftwareSubscriptions MovementCategory = "SOFTWARE_SUBSCRIPTIONS"
	CategoryInternetServices      MovementCategory = "INTERNET_SERVICES"
	CategoryMobilePhonePlans      MovementCategory = "MOBILE_PHONE_PLANS"
	CategoryNet                   MovementCategory = "NET"

	// Utilities
	CategoryUtilities   MovementCategory = "UTILITIES"
	CategoryWater       MovementCategory = "WATER"
	CategoryElectricity MovementCategory = "ELECTRICITY"
	CategoryGas         MovementCategory = "GAS"

	// Business
	CategoryOfficeSupplies       MovementCategory = "OFFICE_SUPPLIES"
	CategoryBusinessTravel       MovementCategory = "BUSINESS_TRAVEL"
	CategoryProfessionalServices MovementCategory = "PROFESSIONAL_SERVICES"

	// Education
	CategoryEducation     MovementCategory = "EDUCATION"
	CategoryOnlineCourses MovementCategory = "ONLINE_COURSES"
	CategoryClasses       MovementCategory = "CLASSES"

	// Insurance
	CategoryHealthInsurance MovementCategory = "HEALTH_INSURANCE"
	CategoryCarInsurance    MovementCategory = "CAR_INSURANCE"
	CategoryLifeInsurance   MovementCategory = "LIFE_INSURANCE"
	CategoryTravelInsurance MovementCategory = "TRAVEL_INSURANCE"

	// Health and medical
	CategoryHealth   MovementCategory = "HEALTH"
	CategoryPharmacy MovementCategory = "PHARMACY"
	CategoryMedical  MovementCategory = "MEDICAL"
	CategoryTherapy  MovementCategory = "THERAPY"

	// Pets
	CategoryPetFood        MovementCategory = "PET_FOOD"
	CategoryVetVisits      MovementCategory = "VET_VISITS"
	CategoryPetAccessories MovementCategory = "PET_ACCESSORIES"
	CategoryPetGrooming    MovementCategory = "PET_GROOMING"

	// Banking and investments
	CategoryBankFees    MovementCategory = "BANK_FEES"
	CategoryInvestments MovementCategory = "INVESTMENTS"
	CategoryTransfer    MovementCategory = "TRANSFER"

	// Streaming and subscriptions
	CategoryStreamingServices MovementCategory = "STREAMING_SERVICES"
	CategoryVideoStreaming    MovementCategory = "VIDEO_STREAMING"
	CategoryMusicStreaming    MovementCategory = "MUSIC_STREAMING"
	CategoryCloudStorage      MovementCategory = "CLOUD_STORAGE"
	CategoryDigitalMagazines  MovementCategory = "DIGITAL_MAGAZINES"
	CategoryNewsSubscriptions MovementCategory = "NEWS_SUBSCRIPTIONS"

	// Travel
	CategoryHotels    MovementCategory = "HOTELS"
	CategoryFlights   MovementCategory = "FLIGHTS"
	CategoryCarRental MovementCategory = "CAR_RENTAL"
	CategoryTours     MovementCategory = "TOURS"

	// Income
	CategorySalary           MovementCategory = "SALARY"
	CategoryFreelancing      MovementCategory = "FREELANCING"
	CategoryInvestmentIncome MovementCategory = "INVESTMENT_INCOME"
	CategoryRefunds          MovementCategory = "REFUNDS"
	CategoryRentalIncome     MovementCategory = "RENTAL_INCOME"

	// General
	CategoryOther MovementCategory = "OTHER"
)

// Categories lists every known movement category in declaration order.
var Categories = []MovementCategory{
	CategoryRent, CategoryPropertyTaxes, CategoryHomeMaintenanceRepairs,
	CategoryHomeInsurance, CategoryHouseholdSuppliesFurniture,
	CategoryFuel, CategoryPublicTransport, CategoryUber, CategoryCarMaintenance,
	CategoryParking, CategoryVehicleInsurance, CategoryTolls,
	CategoryShopping, CategoryClothing, CategoryElectronics, CategoryGifts,
	CategoryBeautyCosmetics,
	CategoryGroceries, CategoryRestaurants, CategoryFastFood, CategoryCoffeeShops,
	CategoryAlcoholBars, CategoryFoodDrinks,
	CategoryEntertainment, CategoryMovies, CategoryEvents, CategoryGames,
	CategoryNightlife, CategoryHobbies, CategoryGym,
	CategoryTech, CategorySoftwareSubscriptions, CategoryInternetServices,
	CategoryMobilePhonePlans, CategoryNet,
	CategoryUtilities, CategoryWater, CategoryElectricity, CategoryGas,
	CategoryOfficeSupplies, CategoryBusinessTravel, CategoryProfessionalServices,
	CategoryEducation, CategoryOnlineCourses, CategoryClasses,
	CategoryHealthInsurance, CategoryCarInsurance, CategoryLifeInsurance,
	CategoryTravelInsurance,
	CategoryHealth, CategoryPharmacy, CategoryMedical, CategoryTherapy,
	CategoryPetFood, CategoryVetVisits, CategoryPetAccessories, CategoryPetGrooming,
	CategoryBankFees, CategoryInvestments, CategoryTransfer,
	CategoryStreamingServices, CategoryVideoStreaming, CategoryMusicStreaming,
	CategoryCloudStorage, CategoryDigitalMagazines, CategoryNewsSubscriptions,
	CategoryHotels, CategoryFlights, CategoryCarRental, CategoryTours,
	CategorySalary, CategoryFreelancing, CategoryInvestmentIncome,
	CategoryRefunds, CategoryRentalIncome,
	CategoryOther,
}

var validCategories = func() map[MovementCategory]bool {
	m := make(map[MovementCategory]bool, len(Categories))
	for _, c := range Categories {
		m[c] = true
	}
	return m
}()

// Valid reports whether the category is one of the known values.
func (c MovementCategory) Valid() bool {
	return validCategories[c]
}

// DisplayName formats an enum category as space-separated title case,
// e.g. SOFTWARE_SUBSCRIPTIONS becomes "Software Subscriptions".
func (c MovementCategory) DisplayName() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// IBANLength is the fixed length required for account IBANs.
const IBANLength = 25

// Account is a user-owned bank account with a materialized balance.
// The balance reflects every movement that has ever been CONFIRMED on
// the account, applied exactly once each.
type Account struct {
	ID        string      `json:"id" badgerhold:"key"`
	UserID    string      `json:"userId" badgerhold:"index"`
	Name      string      `json:"name"`
	IBAN      string      `json:"iban"`
	Balance   float64     `json:"balance"`
	Type      AccountType `json:"type"`
	Priority  int         `json:"priority"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Validate checks the account fields against domain rules.
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: account name is required", ErrInvalidInput)
	}
	if len(a.IBAN) != IBANLength {
		return fmt.Errorf("%w: IBAN must be exactly %d characters", ErrInvalidInput, IBANLength)
	}
	if !a.Type.Valid() {
		return fmt.Errorf("%w: unknown account type %q", ErrInvalidInput, a.Type)
	}
	return nil
}

// Movement is a single money transaction on an account.
type Movement struct {
	ID          string           `json:"id" badgerhold:"key"`
	AccountID   string           `json:"accountId" badgerhold:"index"`
	Category    MovementCategory `json:"category"`
	Type        MovementType     `json:"type"`
	Amount      float64          `json:"amount"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
	Status      MovementStatus   `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// MovementFilter narrows a movement listing. Zero-value fields are
// ignored.
type MovementFilter struct {
	Type   MovementType
	Status MovementStatus
	From   *time.Time
	To     *time.Time
}

// Matches reports whether the movement satisfies every set filter
// field.
func (f MovementFilter) Matches(m *Movement) bool {
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.Status != "" && m.Status != f.Status {
		return false
	}
	if f.From != nil && m.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && m.Date.After(*f.To) {
		return false
	}
	return true
}

// Validate checks the movement fields against domain rules.
func (m *Movement) Validate() error {
	if m.AccountID == "" {
		return fmt.Errorf("%w: account id is required", ErrInvalidInput)
	}
	if !m.Type.Valid() {
		return fmt.Errorf("%w: unknown movement type %q", ErrInvalidInput, m.Type)
	}
	if m.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if !m.Status.Valid() {
		return fmt.Errorf("%w: unknown movement status %q", ErrInvalidInput, m.Status)
	}
	if m.Category != "" && !m.Category.Valid() {
		return fmt.Errorf("%w: unknown movement category %q", ErrInvalidInput, m.Category)
	}
	if m.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// Planned is an anticipated future movement. Planned entries never
// mutate account balances directly; projection logic consumes them.
type Planned struct {
	ID            string             `json:"id" badgerhold:"key"`
	AccountID     string             `json:"accountId" badgerhold:"index"`
	Category      MovementCategory   `json:"category"`
	Type          MovementType       `json:"type"`
	Amount        float64            `json:"amount"`
	Description   string             `json:"description"`
	Recurrence    MovementRecurrence `json:"recurrence"`
	Schedule      string             `json:"schedule"`
	NextExecution time.Time          `json:"nextExecution"`
	EndDate       *time.Time         `json:"endDate,omitempty"`
	Status        MovementStatus     `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// Validate checks the planned entry fields against domain rules.
func (p *Planned) Validate() error {
	if p.AccountID == "" {
		return fmt.Errorf("%w: account id is required", ErrInvalidInput)
	}
	if !p.Type.Valid() {
		return fmt.Errorf("%w: unknown movement type %q", ErrInvalidInput, p.Type)
	}
	if p.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if !p.Recurrence.Valid() {
		return fmt.Errorf("%w: unknown recurrence %q", ErrInvalidInput, p.Recurrence)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, p.Status)
	}
	if p.Category != "" && !p.Category.Valid() {
		return fmt.Errorf("%w: unknown movement category %q", ErrInvalidInput, p.Category)
	}
	if p.NextExecution.IsZero() {
		return fmt.Errorf("%w: next execution date is required", ErrInvalidInput)
	}
	if p.EndDate != nil && p.EndDate.Before(p.NextExecution) {
		return fmt.Errorf("%w: end date must not precede next execution", ErrInvalidInput)
	}
	return nil
}
