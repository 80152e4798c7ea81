package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
	"github.com/thugozi/foodtruck-api/internal/core/ports"
)

// maxUploadBytes caps student ID and bill images.
const maxUploadBytes = 10 << 20

// LoyaltyHandler handles the student loyalty flow: application, ID upload,
// bill upload, and points queries.
type LoyaltyHandler struct {
	loyalty ports.LoyaltyService
	bills   ports.BillService
}

func NewLoyaltyHandler(loyalty ports.LoyaltyService, bills ports.BillService) *LoyaltyHandler {
	return &LoyaltyHandler{loyalty: loyalty, bills: bills}
}

type applyLoyaltyRequest struct {
	College string `json:"college" validate:"required"`
	DOB     string `json:"dob" validate:"required"` // YYYY-MM-DD
}

// Apply registers the caller as a student loyalty applicant.
//
// @Summary      Apply for student loyalty
// @Tags         loyalty
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      applyLoyaltyRequest  true  "College and date of birth"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /loyalty/apply [post]
func (h *LoyaltyHandler) Apply(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req applyLoyaltyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.loyalty.Apply(c.Request().Context(), userID, req.College, req.DOB); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Application received. Please upload your student ID for verification.",
	})
}

// UploadStudentID accepts a multipart image of the caller's student ID.
//
// @Summary      Upload student ID for verification
// @Tags         loyalty
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Student ID image"
// @Success      200   {object}  ports.UploadIDResult
// @Failure      400   {object}  map[string]string
// @Router       /loyalty/upload-student-id [post]
func (h *LoyaltyHandler) UploadStudentID(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	image, err := readImageForm(c)
	if err != nil {
		return err
	}

	result, err := h.loyalty.UploadStudentID(c.Request().Context(), userID, image)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// UploadBill accepts a multipart image of a purchase bill and awards points.
//
// @Summary      Submit a bill for loyalty points
// @Tags         loyalty
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Bill image"
// @Success      200   {object}  ports.BillUploadResult
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /loyalty/upload-bill [post]
func (h *LoyaltyHandler) UploadBill(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	image, err := readImageForm(c)
	if err != nil {
		return err
	}

	result, err := h.bills.UploadBill(c.Request().Context(), userID, image)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Points returns the caller's current point balance.
func (h *LoyaltyHandler) Points(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	points, err := h.bills.Points(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"points": points})
}

// History returns the caller's submitted bills, newest first.
func (h *LoyaltyHandler) History(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	bills, err := h.bills.History(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bills)
}

// readImageForm pulls the "file" part out of a multipart request. Size is
// capped before the body reaches the OCR pipeline.
func readImageForm(c echo.Context) ([]byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, domain.Validationf("image file is required")
	}
	if fh.Size > maxUploadBytes {
		return nil, domain.Validationf("image file too large")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return nil, err
	}
	return data, nil
}
