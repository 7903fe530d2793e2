// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The three file URL columns are either all NULL or all set.
type OrderDTO struct {
	ID          uuid.UUID                             `gorm:"type:uuid;primaryKey"`
	Code        string                                `gorm:"size:64;not null;uniqueIndex"`
	Delivery    DeliveryDTO                           `gorm:"embedded;embeddedPrefix:delivery_"`
	Files       FilesDTO                              `gorm:"embedded;embeddedPrefix:file_"`
	Payment     PaymentDTO                            `gorm:"embedded;embeddedPrefix:payment_"`
	Preferences datatypes.JSONType[order.Preferences] `gorm:"type:jsonb;not null"`
	IPAddress   string                                `gorm:"size:64"`
	CreatedAt   time.Time                             `gorm:"not null;index"`
	IsDeleted   bool                                  `gorm:"not null;default:false;index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// DeliveryDTO is the embedded recipient block. CredentialHash holds a bcrypt hash.
type DeliveryDTO struct {
	Name           string `gorm:"size:255;not null"`
	Phone          string `gorm:"size:32;not null;index"`
	Address        string `gorm:"not null"`
	District       string `gorm:"size:128;not null"`
	Thana          string `gorm:"size:128"`
	CredentialHash string `gorm:"size:72;not null"`
}

// FilesDTO is the embedded file set.
type FilesDTO struct {
	DocumentURL   *string
	FrontCoverURL *string
	BackCoverURL  *string
}

// PaymentDTO is the embedded payment block.
type PaymentDTO struct {
	Method        string          `gorm:"size:64;not null"`
	TransactionID string          `gorm:"size:128;not null"`
	TotalCost     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Voucher       string          `gorm:"size:64"`
}

// MutableColumns are the columns Update writes: the file set and the
// soft-delete flag. Everything else is fixed at placement.
var MutableColumns = []string{
	"file_document_url",
	"file_front_cover_url",
	"file_back_cover_url",
	"is_deleted",
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	delivery := aggregate.Delivery()
	payment := aggregate.Payment()

	return OrderDTO{
		ID:   aggregate.ID().Bytes(),
		Code: aggregate.Code().String(),
		Delivery: DeliveryDTO{
			Name:           delivery.Name(),
			Phone:          delivery.Phone(),
			Address:        delivery.Address(),
			District:       delivery.District(),
			Thana:          delivery.Thana(),
			CredentialHash: delivery.Credential().Hash(),
		},
		Files: filesFromDomain(aggregate.Files()),
		Payment: PaymentDTO{
			Method:        payment.Method(),
			TransactionID: payment.TransactionID(),
			TotalCost:     payment.TotalCost(),
			Voucher:       payment.Voucher(),
		},
		Preferences: datatypes.NewJSONType(aggregate.Preferences()),
		IPAddress:   aggregate.IPAddress(),
		CreatedAt:   aggregate.CreatedAt(),
		IsDeleted:   aggregate.IsDeleted(),
	}
}

func filesFromDomain(set order.FileSet) FilesDTO {
	var dto FilesDTO
	for _, file := range set.Files() {
		url := file.Reference.String()
		switch file.Role {
		case order.Document:
			dto.DocumentURL = &url
		case order.FrontCover:
			dto.FrontCoverURL = &url
		case order.BackCover:
			dto.BackCoverURL = &url
		}
	}
	return dto
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	code, err := kernel.NewOrderCode(dto.Code)
	if err != nil {
		return nil, err
	}

	credential, err := order.RestoreAccessCredential(dto.Delivery.CredentialHash)
	if err != nil {
		return nil, err
	}

	delivery, err := order.NewDelivery(
		dto.Delivery.Name,
		dto.Delivery.Phone,
		dto.Delivery.Address,
		dto.Delivery.District,
		dto.Delivery.Thana,
		credential,
	)
	if err != nil {
		return nil, err
	}

	files, err := order.ParseFileSet(
		deref(dto.Files.DocumentURL),
		deref(dto.Files.FrontCoverURL),
		deref(dto.Files.BackCoverURL),
	)
	if err != nil {
		return nil, err
	}

	payment, err := order.NewPayment(
		dto.Payment.Method,
		dto.Payment.TransactionID,
		dto.Payment.TotalCost,
		dto.Payment.Voucher,
	)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		code,
		delivery,
		files,
		payment,
		dto.Preferences.Data(),
		dto.IPAddress,
		dto.CreatedAt,
		dto.IsDeleted,
	)
}
