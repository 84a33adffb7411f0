package dynamo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbcbank/card-intake/internal/domain"
	"github.com/fbcbank/card-intake/internal/service/application"
)

type fakeDynamo struct {
	puts        []*dynamodb.PutItemInput
	putErr      error
	describeErr error
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	return &dynamodb.DescribeTableOutput{Table: &types.TableDescription{TableName: in.TableName}}, nil
}

func TestApplicationRepo_Create(t *testing.T) {
	fake := &fakeDynamo{}
	repo := NewApplicationRepo(fake, "card_applications")
	repo.now = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }

	a := &domain.Application{
		ApplicationStatus: domain.StatusReplacementCard,
		CardType:          domain.CardPlatinumPrepaid,
		Surname:           "Moyo",
		AmountInFigures:   decimal.RequireFromString("1250.50"),
		HasAgreedToTerms:  true,
	}
	id, err := repo.Create(context.Background(), a)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, a.ID)

	require.Len(t, fake.puts, 1)
	put := fake.puts[0]
	assert.Equal(t, "card_applications", aws.ToString(put.TableName))
	assert.Equal(t, "attribute_not_exists(id)", aws.ToString(put.ConditionExpression))

	var got item
	require.NoError(t, attributevalue.UnmarshalMap(put.Item, &got))
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "2026-03-14T09:30:00Z", got.CreatedAt)
	assert.Equal(t, "Replacement Card", got.ApplicationStatus)
	assert.Equal(t, "Platinum Prepaid", got.CardType)
	assert.Equal(t, "1250.5", got.AmountInFigures)
	assert.Equal(t, "0", got.MonthlyIncomeAmount)
	assert.True(t, got.HasAgreedToTerms)
}

func TestApplicationRepo_CreateFailureLeavesRecord(t *testing.T) {
	fake := &fakeDynamo{putErr: errors.New("ResourceNotFoundException: table missing")}
	repo := NewApplicationRepo(fake, "card_applications")

	a := &domain.Application{Surname: "Moyo"}
	_, err := repo.Create(context.Background(), a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table missing")
	assert.Empty(t, a.ID)
}

func TestApplicationRepo_CreateCollision(t *testing.T) {
	fake := &fakeDynamo{putErr: &types.ConditionalCheckFailedException{Message: aws.String("exists")}}
	_, err := NewApplicationRepo(fake, "t").Create(context.Background(), &domain.Application{})

	var ccf *types.ConditionalCheckFailedException
	assert.ErrorAs(t, err, &ccf)
	assert.Contains(t, err.Error(), "id collision")
}

func TestApplicationRepo_CreateRejectsPersisted(t *testing.T) {
	fake := &fakeDynamo{}
	_, err := NewApplicationRepo(fake, "t").Create(context.Background(), &domain.Application{ID: "x"})
	assert.ErrorIs(t, err, application.ErrAlreadyPersisted)
	assert.Empty(t, fake.puts)
}

func TestApplicationRepo_Ping(t *testing.T) {
	fake := &fakeDynamo{}
	repo := NewApplicationRepo(fake, "t")
	assert.NoError(t, repo.Ping(context.Background()))

	fake.describeErr = errors.New("unreachable")
	assert.Error(t, repo.Ping(context.Background()))
}
