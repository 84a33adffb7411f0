package schema

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fbcbank/card-intake/internal/domain"
)

// ToRecord builds the record to persist. Nothing is rejected: absent text
// becomes "", absent flags false, and amounts that are missing, unparseable
// or negative become zero. A missing status is recorded as a new card and a
// missing application date as now.
func ToRecord(v Values, now time.Time) domain.Application {
	status := domain.ApplicationStatus(v.Text(FieldApplicationStatus))
	if status == "" {
		status = domain.StatusNewCard
	}
	appDate := v.Text(FieldApplicationDate)
	if appDate == "" {
		appDate = now.UTC().Format(time.RFC3339)
	}

	return domain.Application{
		ApplicationStatus: status,
		Branch:            v.Text(FieldBranch),
		ApplicationDate:   appDate,
		CardType:          domain.CardType(v.Text(FieldCardType)),

		OldCardNumber:     v.Text(FieldOldCardNumber),
		ReplacementReason: domain.ReplacementReason(v.Text(FieldReplacementReason)),
		OldCardIssuedAt:   v.Text(FieldOldCardIssuedAt),
		OldCardDateIssued: v.Text(FieldOldCardDateIssued),

		Title:            v.Text(FieldTitle),
		FirstName:        v.Text(FieldFirstName),
		Surname:          v.Text(FieldSurname),
		NationalIDNumber: v.Text(FieldNationalIDNumber),
		DateOfBirth:      v.Text(FieldDateOfBirth),
		Gender:           domain.Gender(v.Text(FieldGender)),
		MaritalStatus:    v.Text(FieldMaritalStatus),

		PhysicalAddress: v.Text(FieldPhysicalAddress),
		Country:         v.Text(FieldCountry),
		Province:        v.Text(FieldProvince),
		City:            v.Text(FieldCity),
		LandlineNumber:  v.Text(FieldLandlineNumber),
		MobileNumber:    v.Text(FieldMobileNumber),
		Email:           v.Text(FieldEmail),

		USDAccountNumber: v.Text(FieldUSDAccountNumber),
		ZWGAccountNumber: v.Text(FieldZWGAccountNumber),

		AmountInWords:       v.Text(FieldAmountInWords),
		AmountInFigures:     ParseAmount(v.Text(FieldAmountInFigures)),
		MonthlyIncomeAmount: ParseAmount(v.Text(FieldMonthlyIncomeAmount)),
		IncomeSource:        domain.IncomeSource(v.Text(FieldIncomeSource)),
		IncomeOutline:       v.Text(FieldIncomeOutline),

		HasNationalIdentity: v.Flag(FieldHasNationalIdentity),
		HasValidPassport:    v.Flag(FieldHasValidPassport),
		HasPassportPhoto:    v.Flag(FieldHasPassportPhoto),
		HasProofOfResidence: v.Flag(FieldHasProofOfResidence),
		HasPayslip:          v.Flag(FieldHasPayslip),
		IdentityNumber:      v.Text(FieldIdentityNumber),

		HasAgreedToTerms:       v.Flag(FieldHasAgreedToTerms),
		HasAcknowledgedReceipt: v.Flag(FieldHasAcknowledgedReceipt),
	}
}

// ParseAmount converts typed money text to a non-negative decimal.
// Thousands separators and a leading currency symbol are tolerated.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
