package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"peerlend-backend/internal/domain/session"
	"peerlend-backend/internal/usecase/evidence"
	"peerlend-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

func (h *LoanHandler) Borrow(c echo.Context) error {
	offerID := c.Param("offer_id")
	if !reHex32.MatchString(offerID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offer_id path param"})
	}
	sess, _ := session.FromContext(c.Request().Context())
	dto, err := h.uc.Borrow(c.Request().Context(), sess, offerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) BorrowedLoans(c echo.Context) error {
	sess, _ := session.FromContext(c.Request().Context())
	dtos, err := h.uc.ForBorrower(c.Request().Context(), sess)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) LentLoans(c echo.Context) error {
	sess, _ := session.FromContext(c.Request().Context())
	board, err := h.uc.ForLender(c.Request().Context(), sess)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, board)
}

// SubmitPayment takes multipart form data ("note" field plus optional "file"
// upload) or a plain JSON body {"note": "..."} for text-only evidence.
func (h *LoanHandler) SubmitPayment(c echo.Context) error {
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}

	in, err := paymentInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	if in.File != nil {
		if closer, ok := in.File.Reader.(io.Closer); ok {
			defer closer.Close()
		}
	}

	sess, _ := session.FromContext(c.Request().Context())
	dto, err := h.uc.SubmitPayment(c.Request().Context(), sess, loanID, *in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ConfirmPayment(c echo.Context) error {
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	sess, _ := session.FromContext(c.Request().Context())
	dto, err := h.uc.Confirm(c.Request().Context(), sess, loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type paymentNoteReq struct {
	Note string `json:"note"`
}

func paymentInput(c echo.Context) (*loan.PaymentInput, error) {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ct, echo.MIMEMultipartForm) {
		var req paymentNoteReq
		if err := c.Bind(&req); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		return &loan.PaymentInput{Note: req.Note}, nil
	}

	in := &loan.PaymentInput{Note: c.FormValue("note")}
	fh, err := c.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			return in, nil
		}
		return nil, err
	}
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	in.File = &evidence.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Reader:      src,
	}
	return in, nil
}
