package schema

// Field names as they appear in the JSON payload.
const (
	FieldApplicationStatus = "applicationStatus"
	FieldBranch            = "branch"
	FieldApplicationDate   = "applicationDate"
	FieldCardType          = "cardType"

	FieldOldCardNumber     = "oldCardNumber"
	FieldReplacementReason = "replacementReason"
	FieldOldCardIssuedAt   = "oldCardIssuedAt"
	FieldOldCardDateIssued = "oldCardDateIssued"

	FieldHasNationalIdentity = "hasNationalIdentity"
	FieldHasValidPassport    = "hasValidPassport"
	FieldHasPassportPhoto    = "hasPassportPhoto"
	FieldHasProofOfResidence = "hasProofOfResidence"
	FieldHasPayslip          = "hasPayslip"
	FieldIdentityNumber      = "identityNumber"

	FieldIncomeOutline       = "incomeOutline"
	FieldIncomeSource        = "incomeSource"
	FieldMonthlyIncomeAmount = "monthlyIncomeAmount"

	FieldTitle            = "title"
	FieldSurname          = "surname"
	FieldFirstName        = "firstName"
	FieldNationalIDNumber = "nationalIdNumber"
	FieldDateOfBirth      = "dateOfBirth"
	FieldGender           = "gender"
	FieldMaritalStatus    = "maritalStatus"
	FieldPhysicalAddress  = "physicalAddress"
	FieldCountry          = "country"
	FieldProvince         = "province"
	FieldCity             = "city"
	FieldLandlineNumber   = "landlineNumber"
	FieldMobileNumber     = "mobileNumber"
	FieldEmail            = "email"

	FieldUSDAccountNumber = "usdAccountNumber"
	FieldZWGAccountNumber = "zwgAccountNumber"

	FieldAmountInWords   = "amountInWords"
	FieldAmountInFigures = "amountInFigures"

	FieldHasAgreedToTerms       = "hasAgreedToTerms"
	FieldHasAcknowledgedReceipt = "hasAcknowledgedReceipt"
)

var sections = []Section{
	{
		Fields: []Field{
			{Name: FieldBranch, Label: "Branch"},
			{Name: FieldApplicationDate, Label: "Date", Inline: true},
		},
	},
	{
		Title: "CARD APPLICATION STATUS",
		Fields: []Field{
			{Name: FieldApplicationStatus, Label: "Status"},
			{Name: FieldOldCardNumber, Label: "Old Card Number", Condition: WhenReplacement, Required: true,
				Message: "Old card number is required for replacement"},
			{Name: FieldReplacementReason, Label: "Replacement Reason", Condition: WhenReplacement, Required: true,
				Message: "Replacement reason is required"},
			{Name: FieldOldCardIssuedAt, Label: "Old Card Issued At", Condition: WhenReplacement},
			{Name: FieldOldCardDateIssued, Label: "Old Card Date Issued", Condition: WhenReplacement},
		},
	},
	{
		Title: "TYPE OF CARD",
		Fields: []Field{
			{Name: FieldCardType, Label: "Card Type", Required: true, Message: "Card type is required"},
		},
	},
	{
		Title: "DOCUMENTS SUPPLIED BY CARDHOLDER",
		Fields: []Field{
			{Name: FieldHasNationalIdentity, Label: "National Identity", Kind: Flag},
			{Name: FieldHasValidPassport, Label: "Passport (valid)", Kind: Flag},
			{Name: FieldHasPassportPhoto, Label: "Passport Photo", Kind: Flag},
			{Name: FieldHasProofOfResidence, Label: "Proof of Residence", Kind: Flag},
			{Name: FieldHasPayslip, Label: "Payslip", Kind: Flag},
			{Name: FieldIdentityNumber, Label: "Identity Number"},
		},
	},
	{
		Title: "SOURCE OF INCOME",
		Fields: []Field{
			{Name: FieldIncomeOutline, Label: "Income Outline"},
			{Name: FieldIncomeSource, Label: "Source"},
			{Name: FieldMonthlyIncomeAmount, Label: "Monthly Income Amount", Kind: Amount},
		},
	},
	{
		Title: "CUSTOMER PERSONAL DETAILS",
		Fields: []Field{
			{Name: FieldTitle, Label: "Title"},
			{Name: FieldSurname, Label: "Surname", Required: true, Message: "Surname is required"},
			{Name: FieldFirstName, Label: "First Name(s)", Required: true, Message: "First name is required"},
			{Name: FieldNationalIDNumber, Label: "National ID Number", Required: true,
				Message: "National ID number is required"},
			{Name: FieldDateOfBirth, Label: "Date of Birth", Required: true, Message: "Date of birth is required"},
			{Name: FieldGender, Label: "Gender", Required: true, Message: "Gender is required"},
			{Name: FieldMaritalStatus, Label: "Marital Status"},
			{Name: FieldPhysicalAddress, Label: "Physical Address", Required: true,
				Message: "Physical address is required"},
			{Name: FieldCountry, Label: "Country", Required: true, Message: "Country is required"},
			{Name: FieldProvince, Label: "Province"},
			{Name: FieldCity, Label: "City"},
			{Name: FieldLandlineNumber, Label: "Landline Number"},
			{Name: FieldMobileNumber, Label: "Mobile Number", Required: true, Message: "Mobile number is required"},
			{Name: FieldEmail, Label: "Email", Email: true},
		},
	},
	{
		Title: "ACCOUNTS TO BE LINKED",
		Fields: []Field{
			{Name: FieldUSDAccountNumber, Label: "USD Account Number"},
			{Name: FieldZWGAccountNumber, Label: "ZWG Account Number"},
		},
	},
	{
		Title: "AMOUNT TO BE LOADED",
		Fields: []Field{
			{Name: FieldAmountInWords, Label: "Amount in Words"},
			{Name: FieldAmountInFigures, Label: "Amount in Figures", Kind: Amount},
		},
	},
	{
		Title: "DECLARATION",
		Fields: []Field{
			{Name: FieldHasAgreedToTerms, Label: "Agreed to Terms and Conditions", Kind: Flag},
		},
	},
	{
		Title: "ACKNOWLEDGEMENT",
		Fields: []Field{
			{Name: FieldHasAcknowledgedReceipt, Label: "Acknowledged Receipt", Kind: Flag},
		},
	},
}

var (
	byName = make(map[string]Field)
	order  []Field
)

func init() {
	for _, s := range sections {
		for _, f := range s.Fields {
			byName[f.Name] = f
			order = append(order, f)
		}
	}
}

// Sections returns the form sections in reading order. The returned slice
// is a copy; callers may not mutate the schema.
func Sections() []Section {
	out := make([]Section, len(sections))
	for i, s := range sections {
		out[i] = Section{Title: s.Title, Fields: append([]Field(nil), s.Fields...)}
	}
	return out
}

// Fields returns every field in reading order.
func Fields() []Field {
	return append([]Field(nil), order...)
}

// Lookup finds a field by its JSON name.
func Lookup(name string) (Field, bool) {
	f, ok := byName[name]
	return f, ok
}
