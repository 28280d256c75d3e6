package converter

import (
	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/internal/usecase"
)

// ProductConverter maps Product rows to domain entities and back.
type ProductConverter struct{}

func NewProductConverter() ProductConverter { return ProductConverter{} }

func (ProductConverter) ToEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID:             model.ID,
		Name:           model.Name,
		Category:       model.Category,
		Description:    model.Description,
		BasePriceCents: model.BasePrice,
		Sizes:          model.Sizes,
		Flavors:        model.Flavors,
		Images:         model.Images,
		Customizable:   model.Customizable,
		Active:         model.Active,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

// UserConverter maps User rows to domain entities and back.
type UserConverter struct{}

func NewUserConverter() UserConverter { return UserConverter{} }

func (UserConverter) ToEntity(model *UserModel) *domain.User {
	return &domain.User{
		ID:           model.ID,
		Name:         model.Name,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Role:         model.Role,
		Active:       model.Active,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// OrderConverter maps Order rows to domain entities and back.
type OrderConverter struct{}

func NewOrderConverter() OrderConverter { return OrderConverter{} }

func (OrderConverter) ToEntity(model *OrderModel) *domain.Order {
	return &domain.Order{
		ID:                  model.ID,
		UserID:              model.UserID,
		CakeType:            model.CakeType,
		Size:                model.Size,
		Flavor:              model.Flavor,
		Message:             model.Message,
		SpecialInstructions: model.SpecialInstructions,
		DeliveryDate:        model.DeliveryDate,
		DeliveryTime:        model.DeliveryTime,
		Status:              model.Status,
		PriceCents:          model.Price,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
}

// OutboxEventConverter maps outbox rows to usecase events and back.
type OutboxEventConverter struct{}

func NewOutboxEventConverter() OutboxEventConverter { return OutboxEventConverter{} }

func (OutboxEventConverter) ToModel(event *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          event.ID,
		EventID:     event.EventID,
		EventType:   string(event.EventType),
		EntityID:    event.EntityID,
		Payload:     event.Payload,
		Status:      string(event.Status),
		CreatedAt:   event.CreatedAt,
		ProcessedAt: event.ProcessedAt,
	}
}

func (OutboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		EntityID:    model.EntityID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		result = append(result, c.ToEntity(model))
	}
	return result
}
