// Package dynamo stores applications in a DynamoDB table keyed by id.
package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/fbcbank/card-intake/internal/config"
	"github.com/fbcbank/card-intake/internal/domain"
	"github.com/fbcbank/card-intake/internal/service/application"
	"github.com/fbcbank/card-intake/internal/storage"
)

// API is the subset of the DynamoDB client the repository uses.
type API interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// ApplicationRepo implements application.Repository against DynamoDB.
type ApplicationRepo struct {
	client API
	table  string
	now    func() time.Time
}

// NewApplicationRepo wraps an existing client.
func NewApplicationRepo(client API, table string) *ApplicationRepo {
	return &ApplicationRepo{client: client, table: table, now: time.Now}
}

// NewApplicationRepoFromConfig builds the client from the database settings.
func NewApplicationRepoFromConfig(ctx context.Context, cfg config.DatabaseConfig) (*ApplicationRepo, error) {
	awsCfg, err := storage.LoadAWSConfig(ctx, cfg.AWSRegion, cfg.GetAWSProfile())
	if err != nil {
		return nil, err
	}
	return NewApplicationRepo(dynamodb.NewFromConfig(awsCfg), cfg.DynamoDBTable), nil
}

// item is the table representation. Amounts are kept as their decimal
// string so no precision is lost in a DynamoDB number.
type item struct {
	ID        string `dynamodbav:"id"`
	CreatedAt string `dynamodbav:"created_at"`

	ApplicationStatus string `dynamodbav:"application_status"`
	Branch            string `dynamodbav:"branch"`
	ApplicationDate   string `dynamodbav:"application_date"`
	CardType          string `dynamodbav:"card_type"`

	OldCardNumber     string `dynamodbav:"old_card_number"`
	ReplacementReason string `dynamodbav:"replacement_reason"`
	OldCardIssuedAt   string `dynamodbav:"old_card_issued_at"`
	OldCardDateIssued string `dynamodbav:"old_card_date_issued"`

	Title            string `dynamodbav:"title"`
	FirstName        string `dynamodbav:"first_name"`
	Surname          string `dynamodbav:"surname"`
	NationalIDNumber string `dynamodbav:"national_id_number"`
	DateOfBirth      string `dynamodbav:"date_of_birth"`
	Gender           string `dynamodbav:"gender"`
	MaritalStatus    string `dynamodbav:"marital_status"`

	PhysicalAddress string `dynamodbav:"physical_address"`
	Country         string `dynamodbav:"country"`
	Province        string `dynamodbav:"province"`
	City            string `dynamodbav:"city"`
	LandlineNumber  string `dynamodbav:"landline_number"`
	MobileNumber    string `dynamodbav:"mobile_number"`
	Email           string `dynamodbav:"email"`

	USDAccountNumber string `dynamodbav:"usd_account_number"`
	ZWGAccountNumber string `dynamodbav:"zwg_account_number"`

	AmountInWords       string `dynamodbav:"amount_in_words"`
	AmountInFigures     string `dynamodbav:"amount_in_figures"`
	MonthlyIncomeAmount string `dynamodbav:"monthly_income_amount"`
	IncomeSource        string `dynamodbav:"income_source"`
	IncomeOutline       string `dynamodbav:"income_outline"`

	HasNationalIdentity bool   `dynamodbav:"has_national_identity"`
	HasValidPassport    bool   `dynamodbav:"has_valid_passport"`
	HasPassportPhoto    bool   `dynamodbav:"has_passport_photo"`
	HasProofOfResidence bool   `dynamodbav:"has_proof_of_residence"`
	HasPayslip          bool   `dynamodbav:"has_payslip"`
	IdentityNumber      string `dynamodbav:"identity_number"`

	HasAgreedToTerms       bool `dynamodbav:"has_agreed_to_terms"`
	HasAcknowledgedReceipt bool `dynamodbav:"has_acknowledged_receipt"`
}

func toItem(a *domain.Application) item {
	return item{
		ID:                     a.ID,
		CreatedAt:              a.CreatedAt.UTC().Format(time.RFC3339Nano),
		ApplicationStatus:      string(a.ApplicationStatus),
		Branch:                 a.Branch,
		ApplicationDate:        a.ApplicationDate,
		CardType:               string(a.CardType),
		OldCardNumber:          a.OldCardNumber,
		ReplacementReason:      string(a.ReplacementReason),
		OldCardIssuedAt:        a.OldCardIssuedAt,
		OldCardDateIssued:      a.OldCardDateIssued,
		Title:                  a.Title,
		FirstName:              a.FirstName,
		Surname:                a.Surname,
		NationalIDNumber:       a.NationalIDNumber,
		DateOfBirth:            a.DateOfBirth,
		Gender:                 string(a.Gender),
		MaritalStatus:          a.MaritalStatus,
		PhysicalAddress:        a.PhysicalAddress,
		Country:                a.Country,
		Province:               a.Province,
		City:                   a.City,
		LandlineNumber:         a.LandlineNumber,
		MobileNumber:           a.MobileNumber,
		Email:                  a.Email,
		USDAccountNumber:       a.USDAccountNumber,
		ZWGAccountNumber:       a.ZWGAccountNumber,
		AmountInWords:          a.AmountInWords,
		AmountInFigures:        a.AmountInFigures.String(),
		MonthlyIncomeAmount:    a.MonthlyIncomeAmount.String(),
		IncomeSource:           string(a.IncomeSource),
		IncomeOutline:          a.IncomeOutline,
		HasNationalIdentity:    a.HasNationalIdentity,
		HasValidPassport:       a.HasValidPassport,
		HasPassportPhoto:       a.HasPassportPhoto,
		HasProofOfResidence:    a.HasProofOfResidence,
		HasPayslip:             a.HasPayslip,
		IdentityNumber:         a.IdentityNumber,
		HasAgreedToTerms:       a.HasAgreedToTerms,
		HasAcknowledgedReceipt: a.HasAcknowledgedReceipt,
	}
}

// Create assigns a new id and writes the item. The put is conditional on
// the id being unused.
func (r *ApplicationRepo) Create(ctx context.Context, a *domain.Application) (string, error) {
	if a.ID != "" {
		return "", application.ErrAlreadyPersisted
	}

	rec := *a
	rec.ID = uuid.New().String()
	rec.CreatedAt = r.now().UTC()

	av, err := attributevalue.MarshalMap(toItem(&rec))
	if err != nil {
		return "", fmt.Errorf("marshal application: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return "", fmt.Errorf("create application: id collision: %w", err)
		}
		return "", fmt.Errorf("create application: %w", err)
	}

	*a = rec
	return rec.ID, nil
}

// Ping checks that the table is reachable.
func (r *ApplicationRepo) Ping(ctx context.Context) error {
	_, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(r.table)})
	return err
}
