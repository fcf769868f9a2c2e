package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hostel/infras/otel"
	"hostel/infras/postgres"
	"hostel/internal/domains/sequence/model"
	"hostel/shared/constant"
	"hostel/shared/logger"
)

// Next claims document numbers atomically: the upsert increments and returns
// in one statement, so two concurrent callers can never observe the same
// value for a (scope, month) pair.
const nextQuery = `
	INSERT INTO monthly_sequences (scope, year_month, value)
	VALUES ($1, $2, 1)
	ON CONFLICT (scope, year_month)
	DO UPDATE SET value = monthly_sequences.value + 1
	RETURNING value`

type Sequence interface {
	Next(ctx context.Context, scope string, at time.Time) (int, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Sequence {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) Next(ctx context.Context, scope string, at time.Time) (int, error) {
	ctx, otelScope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Next", constant.OtelRepositoryScopeName, model.EntityName))
	defer otelScope.End()

	otelScope.SetAttribute(constant.OtelQueryAttributeKey, nextQuery)

	var value int

	err := repo.db.Write.GetContext(ctx, &value, nextQuery, scope, at.Format(constant.YearMonthKey))
	if err != nil {
		logger.ErrorWithStack(err)
		otelScope.TraceError(err)

		return 0, fmt.Errorf("failed to claim next sequence value (%s): %w", scope, err)
	}

	return value, nil
}
