package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type UpsertCheckoutParams struct {
	UserID     pgtype.UUID
	Day        pgtype.Date
	CheckoutAt pgtype.Timestamptz
}

func (q *Queries) UpsertCheckout(ctx context.Context, arg UpsertCheckoutParams) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO checkouts (user_id, day, checkout_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, day) DO UPDATE SET checkout_at = EXCLUDED.checkout_at
	`, arg.UserID, arg.Day, arg.CheckoutAt)
	return err
}

type ListCheckoutsInScopeParams struct {
	UserID pgtype.UUID
	Start  pgtype.Date
	End    pgtype.Date
}

func (q *Queries) ListCheckoutsInScope(ctx context.Context, arg ListCheckoutsInScopeParams) ([]Checkout, error) {
	rows, err := q.db.Query(ctx, `
		SELECT user_id, day, checkout_at
		FROM checkouts
		WHERE user_id = $1
		  AND ($2::date IS NULL OR day >= $2)
		  AND ($3::date IS NULL OR day <= $3)
	`, arg.UserID, arg.Start, arg.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkouts []Checkout
	for rows.Next() {
		var checkout Checkout
		if err := rows.Scan(&checkout.UserID, &checkout.Day, &checkout.CheckoutAt); err != nil {
			return nil, err
		}
		checkouts = append(checkouts, checkout)
	}
	return checkouts, rows.Err()
}
