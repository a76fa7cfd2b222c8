package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"peerlend-backend/internal/domain/session"
	"peerlend-backend/internal/usecase/offer"
)

type OfferHandler struct{ uc *offer.Usecase }

func NewOfferHandler(uc *offer.Usecase) *OfferHandler { return &OfferHandler{uc: uc} }

type createOfferReq struct {
	FullName      string   `json:"full_name"      validate:"required"`
	Contact       string   `json:"contact"        validate:"required"`
	Amount        float64  `json:"amount"         validate:"required,gt=0"`
	PaymentMethod string   `json:"payment_method" validate:"required"`
	InterestRate  *float64 `json:"interest_rate"  validate:"omitempty,gte=0,lte=100"`
}

func (h *OfferHandler) CreateOffer(c echo.Context) error {
	var req createOfferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	sess, _ := session.FromContext(c.Request().Context())
	dto, err := h.uc.Create(c.Request().Context(), sess, offer.CreateOfferInput{
		FullName:      req.FullName,
		Contact:       req.Contact,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		InterestRate:  req.InterestRate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// Marketplace hides the caller's own offers and ones they already borrowed;
// ?q= narrows by lender name or payment method.
func (h *OfferHandler) Marketplace(c echo.Context) error {
	sess, _ := session.FromContext(c.Request().Context())
	dtos, err := h.uc.Marketplace(c.Request().Context(), sess, c.QueryParam("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *OfferHandler) MyOffers(c echo.Context) error {
	sess, _ := session.FromContext(c.Request().Context())
	dtos, err := h.uc.ListByOwner(c.Request().Context(), sess)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}
