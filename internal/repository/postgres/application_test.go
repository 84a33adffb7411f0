package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbcbank/card-intake/internal/domain"
	"github.com/fbcbank/card-intake/internal/service/application"
)

var insertRe = regexp.QuoteMeta("INSERT INTO card_applications")

type anyUUID struct{}

func (anyUUID) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func insertArgs(a *domain.Application) []driver.Value {
	args := []driver.Value{anyUUID{}}
	for i := 0; i < 37; i++ {
		args = append(args, sqlmock.AnyArg())
	}
	args[4] = string(a.CardType)
	args[11] = a.Surname
	args[26] = a.AmountInFigures.String()
	return args
}

func TestApplicationRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	a := &domain.Application{
		ApplicationStatus: domain.StatusNewCard,
		CardType:          domain.CardGoldPrepaid,
		Surname:           "Moyo",
		FirstName:         "Tendai",
		AmountInFigures:   decimal.RequireFromString("1250.5"),
	}

	mock.ExpectQuery(insertRe).
		WithArgs(insertArgs(a)...).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	repo := NewApplicationRepo(db)
	id, err := repo.Create(context.Background(), a)
	require.NoError(t, err)

	_, err = uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, a.ID)
	assert.Equal(t, created, a.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepo_CreateFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(insertRe).WillReturnError(errors.New(`relation "card_applications" does not exist`))

	a := &domain.Application{}
	_, err = NewApplicationRepo(db).Create(context.Background(), a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card_applications")
	assert.Empty(t, a.ID, "id is only assigned once the row exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepo_CreateRejectsPersisted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = NewApplicationRepo(db).Create(context.Background(), &domain.Application{ID: "already"})
	assert.ErrorIs(t, err, application.ErrAlreadyPersisted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepo_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	assert.NoError(t, NewApplicationRepo(db).Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
