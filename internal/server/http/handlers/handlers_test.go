package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/ticketing/internal/domain/errors"
	"github.com/polkiloo/ticketing/internal/domain/model"
	"github.com/polkiloo/ticketing/internal/server/http/dto"
	"github.com/polkiloo/ticketing/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/ticketing/internal/test"
)

var (
	member = model.Identity{ID: "member-1", Role: model.RoleMember}
	admin  = model.Identity{ID: "admin-1", Role: model.RoleAdmin}
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, route, path string, handler gin.HandlerFunc, identity *model.Identity, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if identity != nil {
			c.Set(middleware.IdentityContextKey, *identity)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, resp.Body.String())
	}
	return body
}

func TestCurrentIdentity(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentIdentity(c); got != (model.Identity{}) {
		t.Fatalf("expected empty identity when not set, got %+v", got)
	}

	c.Set(middleware.IdentityContextKey, member)
	if got := CurrentIdentity(c); got != member {
		t.Fatalf("expected %+v, got %+v", member, got)
	}
}

func TestRespondErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		kind   string
	}{
		{fmt.Errorf("%w: quantity", domainErrors.ErrValidation), http.StatusBadRequest, "validation_error"},
		{domainErrors.ErrNotFound, http.StatusNotFound, "not_found"},
		{domainErrors.ErrInsufficientStock, http.StatusConflict, "insufficient_stock"},
		{domainErrors.ErrAlreadyCompleted, http.StatusConflict, "already_completed"},
		{domainErrors.ErrOrderCancelled, http.StatusConflict, "order_cancelled"},
		{domainErrors.ErrForbidden, http.StatusForbidden, "forbidden"},
		{fmt.Errorf("%w: conn reset", domainErrors.ErrPersistence), http.StatusInternalServerError, "internal_error"},
		{errors.New("unexpected"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range tests {
		t.Run(tc.kind, func(t *testing.T) {
			resp := performRequest(t, http.MethodGet, "/", "/", func(c *gin.Context) { respondError(c, tc.err) }, nil, nil)
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
			body := decodeError(t, resp)
			if body.Error != tc.kind {
				t.Fatalf("expected kind %q, got %q", tc.kind, body.Error)
			}
			if tc.status == http.StatusInternalServerError && body.Message != "internal server error" {
				t.Fatalf("expected internal details to be hidden, got %q", body.Message)
			}
		})
	}
}

func TestOrderHandlerPlace(t *testing.T) {
	ticketID := uuid.New()
	var got model.PlaceOrderInput
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		PlaceFn: func(_ context.Context, identity model.Identity, input model.PlaceOrderInput) (*model.Order, error) {
			if identity != member {
				t.Fatalf("unexpected identity %+v", identity)
			}
			got = input
			return &model.Order{Code: "ORD-ABC", BuyerID: identity.ID, TicketID: ticketID, Quantity: input.Quantity, Total: 300, Status: model.OrderStatusPending}, nil
		},
	})

	body, _ := json.Marshal(dto.PlaceOrderRequest{TicketID: ticketID.String(), Quantity: 3})
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", handler.Place, &member, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if got.TicketID != ticketID.String() || got.Quantity != 3 {
		t.Fatalf("unexpected input %+v", got)
	}

	var order dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if order.Code != "ORD-ABC" || order.Status != "pending" || order.Total != 300 {
		t.Fatalf("unexpected order %+v", order)
	}
	if order.Vouchers == nil || len(order.Vouchers) != 0 {
		t.Fatalf("expected empty voucher list, got %v", order.Vouchers)
	}
}

func TestOrderHandlerPlaceFailures(t *testing.T) {
	tests := []struct {
		name   string
		body   []byte
		err    error
		status int
	}{
		{"malformed json", []byte("{"), nil, http.StatusBadRequest},
		{"validation", []byte(`{"ticket_id":"x","quantity":0}`), domainErrors.ErrValidation, http.StatusBadRequest},
		{"unknown ticket", []byte(`{"ticket_id":"x","quantity":1}`), domainErrors.ErrNotFound, http.StatusNotFound},
		{"sold out", []byte(`{"ticket_id":"x","quantity":9}`), domainErrors.ErrInsufficientStock, http.StatusConflict},
		{"storage", []byte(`{"ticket_id":"x","quantity":1}`), domainErrors.ErrPersistence, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewOrderHandler(testhelpers.OrderFacadeStub{
				PlaceFn: func(context.Context, model.Identity, model.PlaceOrderInput) (*model.Order, error) {
					return nil, tc.err
				},
			})
			resp := performRequest(t, http.MethodPost, "/orders", "/orders", handler.Place, &member, tc.body)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerComplete(t *testing.T) {
	voucherID := uuid.New()
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		CompleteFn: func(_ context.Context, code string, identity model.Identity) (*model.Order, error) {
			switch code {
			case "ORD-DONE":
				return nil, domainErrors.ErrAlreadyCompleted
			case "ORD-MISSING":
				return nil, domainErrors.ErrNotFound
			}
			return &model.Order{Code: code, BuyerID: identity.ID, Status: model.OrderStatusCompleted, Vouchers: []model.Voucher{{ID: voucherID}}}, nil
		},
	})

	resp := performRequest(t, http.MethodPost, "/orders/:code/complete", "/orders/ORD-OK/complete", handler.Complete, &member, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var raw map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	vouchers, _ := raw["vouchers"].([]any)
	if len(vouchers) != 1 {
		t.Fatalf("expected one voucher, got %v", raw["vouchers"])
	}
	first, _ := vouchers[0].(map[string]any)
	if first["voucherId"] != voucherID.String() || first["isPrint"] != false {
		t.Fatalf("unexpected voucher encoding %v", first)
	}

	resp = performRequest(t, http.MethodPost, "/orders/:code/complete", "/orders/ORD-DONE/complete", handler.Complete, &member, nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for completed order, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodPost, "/orders/:code/complete", "/orders/ORD-MISSING/complete", handler.Complete, &member, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing order, got %d", resp.Code)
	}
}

func TestOrderHandlerLifecycleEndpoints(t *testing.T) {
	var calls []string
	record := func(name string, status model.OrderStatus) func(context.Context, string, model.Identity) (*model.Order, error) {
		return func(_ context.Context, code string, _ model.Identity) (*model.Order, error) {
			calls = append(calls, name+":"+code)
			return &model.Order{Code: code, Status: status}, nil
		}
	}
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		GetFn:         record("get", model.OrderStatusPending),
		CancelFn:      record("cancel", model.OrderStatusCancelled),
		MarkPendingFn: record("pending", model.OrderStatusPending),
	})

	resp := performRequest(t, http.MethodGet, "/orders/:code", "/orders/ORD-1", handler.Get, &member, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodPost, "/orders/:code/cancel", "/orders/ORD-1/cancel", handler.Cancel, &member, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("cancel: expected 200, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodPost, "/orders/:code/pending", "/orders/ORD-1/pending", handler.MarkPending, &member, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("pending: expected 200, got %d", resp.Code)
	}

	want := []string{"get:ORD-1", "cancel:ORD-1", "pending:ORD-1"}
	if fmt.Sprint(calls) != fmt.Sprint(want) {
		t.Fatalf("expected calls %v, got %v", want, calls)
	}
}

func TestOrderHandlerList(t *testing.T) {
	ticketID := uuid.New()
	var got model.OrderFilter
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		ListFn: func(_ context.Context, _ model.Identity, filter model.OrderFilter) (model.OrderPage, error) {
			got = filter
			return model.NewOrderPage([]model.Order{{Code: "ORD-1"}}, 11, filter.Normalize()), nil
		},
	})

	path := "/orders?status=completed&buyer=b1&ticket=" + ticketID.String() + "&search=ord&page=2&limit=5"
	resp := performRequest(t, http.MethodGet, "/orders", path, handler.List, &admin, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got.Status != model.OrderStatusCompleted || got.BuyerID != "b1" || got.Search != "ord" || got.Page != 2 || got.Limit != 5 {
		t.Fatalf("unexpected filter %+v", got)
	}
	if got.TicketID == nil || *got.TicketID != ticketID {
		t.Fatalf("expected ticket filter %s, got %v", ticketID, got.TicketID)
	}

	var page dto.OrderPageResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.Total != 11 || page.TotalPages != 3 || len(page.Items) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestOrderHandlerListRejectsBadQuery(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})
	for _, query := range []string{"status=shipped", "ticket=nope", "page=x", "limit=1.5"} {
		resp := performRequest(t, http.MethodGet, "/member/orders", "/member/orders?"+query, handler.ListOwn, &member, nil)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", query, resp.Code)
		}
	}
}

func TestOrderHandlerListOwn(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})
	resp := performRequest(t, http.MethodGet, "/member/orders", "/member/orders", handler.ListOwn, &member, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var page dto.OrderPageResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.Items == nil || page.Limit != model.DefaultPageLimit {
		t.Fatalf("unexpected empty page %+v", page)
	}
}

func TestTicketHandler(t *testing.T) {
	ticketID := uuid.New()
	handler := NewTicketHandler(testhelpers.TicketFacadeStub{
		GetFn: func(_ context.Context, id string) (*model.Ticket, error) {
			if id != ticketID.String() {
				return nil, domainErrors.ErrNotFound
			}
			return &model.Ticket{ID: ticketID, Name: "Floor", Price: 100, Quantity: 7}, nil
		},
		CreateFn: func(_ context.Context, identity model.Identity, in model.NewTicket) (*model.Ticket, error) {
			if !identity.IsAdmin() {
				return nil, domainErrors.ErrForbidden
			}
			return &model.Ticket{ID: ticketID, EventID: in.EventID, Name: in.Name, Price: in.Price, Quantity: in.Quantity}, nil
		},
		UpdateFn: func(_ context.Context, _ model.Identity, _ string, update model.TicketUpdate) (*model.Ticket, error) {
			if update.Quantity == nil || update.Price != nil {
				t.Fatalf("expected only quantity in update, got %+v", update)
			}
			return &model.Ticket{ID: ticketID, Quantity: *update.Quantity}, nil
		},
	})

	resp := performRequest(t, http.MethodGet, "/tickets/:id", "/tickets/"+ticketID.String(), handler.Get, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodGet, "/tickets/:id", "/tickets/"+uuid.NewString(), handler.Get, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("get unknown: expected 404, got %d", resp.Code)
	}

	body := []byte(`{"event_id":"e1","name":"Floor","price":100,"quantity":7}`)
	resp = performRequest(t, http.MethodPost, "/admin/tickets", "/admin/tickets", handler.Create, &admin, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodPost, "/admin/tickets", "/admin/tickets", handler.Create, &member, body)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("create as member: expected 403, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodPost, "/admin/tickets", "/admin/tickets", handler.Create, &admin, []byte("nope"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("create malformed: expected 400, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPatch, "/admin/tickets/:id", "/admin/tickets/"+ticketID.String(), handler.Update, &admin, []byte(`{"quantity":3}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.Code)
	}
	var ticket dto.TicketResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &ticket); err != nil {
		t.Fatalf("decode ticket: %v", err)
	}
	if ticket.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", ticket.Quantity)
	}
}

func TestVoucherHandlerQR(t *testing.T) {
	var gotSize int
	handler := NewVoucherHandler(testhelpers.VoucherFacadeStub{
		QRFn: func(_ context.Context, code, voucherID string, _ model.Identity, size int) ([]byte, error) {
			gotSize = size
			if code != "ORD-1" || voucherID != "v1" {
				return nil, domainErrors.ErrNotFound
			}
			return []byte("png"), nil
		},
	})

	route := "/orders/:code/vouchers/:voucher/qr"
	resp := performRequest(t, http.MethodGet, route, "/orders/ORD-1/vouchers/v1/qr?size=128", handler.QR, &member, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Header().Get("Content-Type") != "image/png" || resp.Body.String() != "png" {
		t.Fatalf("unexpected response %q %q", resp.Header().Get("Content-Type"), resp.Body.String())
	}
	if gotSize != 128 {
		t.Fatalf("expected size 128, got %d", gotSize)
	}

	resp = performRequest(t, http.MethodGet, route, "/orders/ORD-2/vouchers/v1/qr", handler.QR, &member, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodGet, route, "/orders/ORD-1/vouchers/v1/qr?size=big", handler.QR, &member, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestVoucherHandlerVerify(t *testing.T) {
	voucherID := uuid.New()
	handler := NewVoucherHandler(testhelpers.VoucherFacadeStub{
		VerifyFn: func(_ context.Context, _ model.Identity, payload string) (*model.VoucherCheck, error) {
			if payload != "signed" {
				return nil, domainErrors.ErrValidation
			}
			return &model.VoucherCheck{OrderCode: "ORD-1", BuyerID: "member-1", Voucher: model.Voucher{ID: voucherID}}, nil
		},
	})

	resp := performRequest(t, http.MethodPost, "/verify", "/verify", handler.Verify, &admin, []byte(`{"payload":"signed"}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var check dto.VoucherCheckResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &check); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if check.OrderCode != "ORD-1" || check.Voucher.VoucherID != voucherID {
		t.Fatalf("unexpected check %+v", check)
	}

	resp = performRequest(t, http.MethodPost, "/verify", "/verify", handler.Verify, &admin, []byte(`{"payload":"forged"}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for forged payload, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodPost, "/verify", "/verify", handler.Verify, &admin, []byte(`{}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty payload, got %d", resp.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/health", "/health", NewHealthHandler(testhelpers.HealthFacadeStub{}).Check, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodGet, "/health", "/health", NewHealthHandler(testhelpers.HealthFacadeStub{Err: domainErrors.ErrPersistence}).Check, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}
