package queries

import (
	"context"

	"printflow/internal/core/domain/model/order"
	"printflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// VerifyOrderAccessQueryHandler checks the credential against every visible
// order of the phone, newest first, and returns the first match. A wrong
// phone and a wrong credential produce the same not-found error.
type VerifyOrderAccessQueryHandler struct {
	db *gorm.DB
}

func NewVerifyOrderAccessQueryHandler(db *gorm.DB) VerifyOrderAccessQueryHandler {
	return VerifyOrderAccessQueryHandler{db: db}
}

func (h VerifyOrderAccessQueryHandler) Handle(
	ctx context.Context,
	query VerifyOrderAccessQuery,
) (VerifyOrderAccessQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return VerifyOrderAccessQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			code,
			delivery_credential_hash
		FROM orders
		WHERE delivery_phone = ? AND is_deleted = FALSE
		ORDER BY created_at DESC
	`, query.Phone()).Rows()
	if err != nil {
		return VerifyOrderAccessQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var code, hash string
		if err = rows.Scan(&code, &hash); err != nil {
			return VerifyOrderAccessQueryResponse{}, err
		}

		credential, credErr := order.RestoreAccessCredential(hash)
		if credErr != nil {
			continue
		}
		if credential.Matches(query.Credential()) {
			return VerifyOrderAccessQueryResponse{Code: code}, nil
		}
	}

	if err = rows.Err(); err != nil {
		return VerifyOrderAccessQueryResponse{}, err
	}

	return VerifyOrderAccessQueryResponse{}, errs.NewObjectNotFoundError("order", "matching phone and credential")
}
