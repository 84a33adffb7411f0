package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/fbcbank/card-intake/internal/domain"
	"github.com/fbcbank/card-intake/internal/service/application"
)

// ApplicationRepo implements application.Repository against PostgreSQL.
type ApplicationRepo struct{ db *sql.DB }

// NewApplicationRepo creates a Postgres-backed application repository.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo { return &ApplicationRepo{db: db} }

const insertApplication = `
	INSERT INTO card_applications (
		id, application_status, branch, application_date, card_type,
		old_card_number, replacement_reason, old_card_issued_at, old_card_date_issued,
		title, first_name, surname, national_id_number, date_of_birth, gender, marital_status,
		physical_address, country, province, city, landline_number, mobile_number, email,
		usd_account_number, zwg_account_number,
		amount_in_words, amount_in_figures, monthly_income_amount, income_source, income_outline,
		has_national_identity, has_valid_passport, has_passport_photo, has_proof_of_residence,
		has_payslip, identity_number,
		has_agreed_to_terms, has_acknowledged_receipt
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9,
		$10, $11, $12, $13, $14, $15, $16,
		$17, $18, $19, $20, $21, $22, $23,
		$24, $25,
		$26, $27, $28, $29, $30,
		$31, $32, $33, $34,
		$35, $36,
		$37, $38
	)
	RETURNING created_at`

// Create assigns a new id and inserts the record.
func (r *ApplicationRepo) Create(ctx context.Context, a *domain.Application) (string, error) {
	if a.ID != "" {
		return "", application.ErrAlreadyPersisted
	}
	id := uuid.New().String()

	err := r.db.QueryRowContext(ctx, insertApplication,
		id, a.ApplicationStatus, a.Branch, a.ApplicationDate, a.CardType,
		a.OldCardNumber, a.ReplacementReason, a.OldCardIssuedAt, a.OldCardDateIssued,
		a.Title, a.FirstName, a.Surname, a.NationalIDNumber, a.DateOfBirth, a.Gender, a.MaritalStatus,
		a.PhysicalAddress, a.Country, a.Province, a.City, a.LandlineNumber, a.MobileNumber, a.Email,
		a.USDAccountNumber, a.ZWGAccountNumber,
		a.AmountInWords, a.AmountInFigures, a.MonthlyIncomeAmount, a.IncomeSource, a.IncomeOutline,
		a.HasNationalIdentity, a.HasValidPassport, a.HasPassportPhoto, a.HasProofOfResidence,
		a.HasPayslip, a.IdentityNumber,
		a.HasAgreedToTerms, a.HasAcknowledgedReceipt,
	).Scan(&a.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("create application: %w", err)
	}
	a.ID = id
	return id, nil
}

// Ping checks the database connection.
func (r *ApplicationRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
