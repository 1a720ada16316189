package repositories

import (
	"context"
	"fmt"
	"reflect"

	"github.com/lurelab/lurelab-backend/models"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func NewQueryBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// ExecBuilder builds and executes a query for which no rows are expected.
func ExecBuilder(ctx context.Context, exec Executor, builder squirrel.Sqlizer) (pgconn.CommandTag, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, errors.Wrap(err, "can't build sql query")
	}

	tag, err := exec.Exec(ctx, query, args...)
	if err != nil {
		return pgconn.CommandTag{}, errors.Wrap(err, "error executing sql query")
	}
	return tag, nil
}

// SqlToListOfModels executes the query and adapts every row into a model.
func SqlToListOfModels[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	builder squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) ([]Model, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "can't build sql query")
	}

	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing sql query")
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Model, error) {
		dbModel, err := pgx.RowToStructByName[DBModel](row)
		if err != nil {
			var zeroModel Model
			return zeroModel, errors.Wrap(err, fmt.Sprintf("error scanning row to struct %T", dbModel))
		}
		return adapter(dbModel)
	})
}

// SqlToOptionalModel executes the query and adapts the single expected row;
// it returns nil when the query matched nothing.
func SqlToOptionalModel[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	builder squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) (*Model, error) {
	results, err := SqlToListOfModels(ctx, exec, builder, adapter)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, nil
	}
	model := results[0]
	if len(results) > 1 {
		return nil, errors.Newf("expected 1 or 0 %v, got %d rows", reflect.TypeOf(model), len(results))
	}
	return &model, nil
}

// SqlToModel is SqlToOptionalModel returning NotFoundError on no rows.
func SqlToModel[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	builder squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) (Model, error) {
	model, err := SqlToOptionalModel(ctx, exec, builder, adapter)
	var zeroModel Model
	if err != nil {
		return zeroModel, err
	}
	if model == nil {
		return zeroModel, errors.Wrap(models.NotFoundError,
			fmt.Sprintf("found no object of type %T", zeroModel))
	}
	return *model, nil
}
