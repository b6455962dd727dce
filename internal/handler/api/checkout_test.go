//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"shopcore/internal/handler/api"
	"shopcore/internal/pkg/errs"
	"shopcore/internal/usecase/commands"
	"shopcore/tests/common/builder"
	"shopcore/tests/common/httptest"
	commandsmock "shopcore/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCheckoutCommands
	handler      *api.CheckoutHandler
	userID       uuid.UUID
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.handler = api.NewCheckoutHandler(s.mockCommands)
	s.userID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", "customer")
		c.Next()
	}

	s.router.POST("/checkout", authMiddleware, s.handler.Checkout)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

func (s *CheckoutHandlerTestSuite) idempotencyHeaders() map[string]string {
	return map[string]string{"Idempotency-Key": uuid.NewString()}
}

func (s *CheckoutHandlerTestSuite) TestCheckout() {
	url := "/checkout"

	s.Run("success: 201 Created for a fresh checkout", func() {
		view := builder.NewOrderBuilder().BuildView()
		s.mockCommands.EXPECT().Checkout(gomock.Any(), s.userID, gomock.Any(), gomock.Any()).
			Return(&commands.CheckoutResult{Order: view, IsReplayed: false}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url,
			map[string]any{"coupon_code": "SAVE10"}, "bearer-token", s.idempotencyHeaders())

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID.String(), body["id"])
		s.Equal("pending", body["status"])
	})

	s.Run("success: 200 OK when the idempotency key replays an order", func() {
		view := builder.NewOrderBuilder().BuildView()
		s.mockCommands.EXPECT().Checkout(gomock.Any(), s.userID, gomock.Any(), gomock.Any()).
			Return(&commands.CheckoutResult{Order: view, IsReplayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url,
			nil, "bearer-token", s.idempotencyHeaders())

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: missing idempotency key", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "idempotency key")
	})

	s.Run("error: malformed idempotency key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url,
			nil, "bearer-token", map[string]string{"Idempotency-Key": "not-a-uuid"})

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid idempotency key")
	})

	errorCases := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{name: "empty cart", err: errs.ErrEmptyCart, expectCode: http.StatusBadRequest, expectMsg: "Cart is empty"},
		{name: "product vanished", err: errs.ErrProductNotFound, expectCode: http.StatusNotFound, expectMsg: "Product not found"},
		{name: "unknown coupon", err: errs.ErrCouponNotFound, expectCode: http.StatusNotFound, expectMsg: "Coupon not found"},
		{name: "insufficient stock", err: errs.ErrInsufficientStock, expectCode: http.StatusConflict, expectMsg: "Insufficient stock"},
		{name: "same key different payload", err: errs.ErrDuplicateCheckout, expectCode: http.StatusConflict, expectMsg: "Duplicate checkout"},
		{name: "checkout in flight", err: errs.ErrIdempotencyInProgress, expectCode: http.StatusConflict, expectMsg: "currently being processed"},
	}
	for _, tc := range errorCases {
		s.Run("error: "+tc.name, func() {
			s.mockCommands.EXPECT().Checkout(gomock.Any(), s.userID, gomock.Any(), gomock.Any()).
				Return(nil, tc.err).Times(1)

			rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url,
				nil, "bearer-token", s.idempotencyHeaders())

			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
		})
	}
}
