package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplicationStatus distinguishes a first card from a replacement.
type ApplicationStatus string

const (
	StatusNewCard         ApplicationStatus = "New Card"
	StatusReplacementCard ApplicationStatus = "Replacement Card"
)

// CardType is the product tier the applicant selected.
type CardType string

const (
	CardWorldBlackDebit   CardType = "World Black Debit"
	CardWorldBlackPrepaid CardType = "World Black Prepaid"
	CardPlatinumPrepaid   CardType = "Platinum Prepaid"
	CardGoldPrepaid       CardType = "Gold Prepaid"
)

// ReplacementReason explains why an existing card is being replaced.
type ReplacementReason string

const (
	ReasonExpired ReplacementReason = "Expired"
	ReasonLost    ReplacementReason = "Lost"
	ReasonStolen  ReplacementReason = "Stolen"
	ReasonOther   ReplacementReason = "Other"
)

// Gender as captured on the paper form.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// IncomeSource enumerates the "Source of income" options.
type IncomeSource string

const (
	IncomeEmployedPermanent IncomeSource = "Employed (Permanent)"
	IncomeContractual       IncomeSource = "Contractual"
	IncomeSelf              IncomeSource = "Self"
	IncomeOther             IncomeSource = "Other"
)

// Application is the durable record of one submitted card application.
// Enumerated fields hold whatever the applicant sent; intake never rejects
// a value for being outside the known set.
type Application struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	ApplicationStatus ApplicationStatus `json:"applicationStatus" db:"application_status"`
	Branch            string            `json:"branch" db:"branch"`
	ApplicationDate   string            `json:"applicationDate" db:"application_date"`
	CardType          CardType          `json:"cardType" db:"card_type"`

	OldCardNumber     string            `json:"oldCardNumber" db:"old_card_number"`
	ReplacementReason ReplacementReason `json:"replacementReason" db:"replacement_reason"`
	OldCardIssuedAt   string            `json:"oldCardIssuedAt" db:"old_card_issued_at"`
	OldCardDateIssued string            `json:"oldCardDateIssued" db:"old_card_date_issued"`

	Title            string `json:"title" db:"title"`
	FirstName        string `json:"firstName" db:"first_name"`
	Surname          string `json:"surname" db:"surname"`
	NationalIDNumber string `json:"nationalIdNumber" db:"national_id_number"`
	DateOfBirth      string `json:"dateOfBirth" db:"date_of_birth"`
	Gender           Gender `json:"gender" db:"gender"`
	MaritalStatus    string `json:"maritalStatus" db:"marital_status"`

	PhysicalAddress string `json:"physicalAddress" db:"physical_address"`
	Country         string `json:"country" db:"country"`
	Province        string `json:"province" db:"province"`
	City            string `json:"city" db:"city"`
	LandlineNumber  string `json:"landlineNumber" db:"landline_number"`
	MobileNumber    string `json:"mobileNumber" db:"mobile_number"`
	Email           string `json:"email" db:"email"`

	USDAccountNumber string `json:"usdAccountNumber" db:"usd_account_number"`
	ZWGAccountNumber string `json:"zwgAccountNumber" db:"zwg_account_number"`

	AmountInWords       string          `json:"amountInWords" db:"amount_in_words"`
	AmountInFigures     decimal.Decimal `json:"amountInFigures" db:"amount_in_figures"`
	MonthlyIncomeAmount decimal.Decimal `json:"monthlyIncomeAmount" db:"monthly_income_amount"`
	IncomeSource        IncomeSource    `json:"incomeSource" db:"income_source"`
	IncomeOutline       string          `json:"incomeOutline" db:"income_outline"`

	HasNationalIdentity bool   `json:"hasNationalIdentity" db:"has_national_identity"`
	HasValidPassport    bool   `json:"hasValidPassport" db:"has_valid_passport"`
	HasPassportPhoto    bool   `json:"hasPassportPhoto" db:"has_passport_photo"`
	HasProofOfResidence bool   `json:"hasProofOfResidence" db:"has_proof_of_residence"`
	HasPayslip          bool   `json:"hasPayslip" db:"has_payslip"`
	IdentityNumber      string `json:"identityNumber" db:"identity_number"`

	HasAgreedToTerms       bool `json:"hasAgreedToTerms" db:"has_agreed_to_terms"`
	HasAcknowledgedReceipt bool `json:"hasAcknowledgedReceipt" db:"has_acknowledged_receipt"`
}

// IsReplacement reports whether the replacement-only fields apply.
func (a *Application) IsReplacement() bool {
	return a.ApplicationStatus == StatusReplacementCard
}

// FullName is the applicant's name as used in correspondence.
func (a *Application) FullName() string {
	switch {
	case a.FirstName == "":
		return a.Surname
	case a.Surname == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.Surname
}
