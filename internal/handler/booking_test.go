package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/model"
	"github.com/iliyamo/event-hotel-booking/internal/service"
)

// rulesStub returns canned results for each operation.
type rulesStub struct {
	listRes   model.BookingWithRoom
	listErr   error
	createRes model.Booking
	createErr error
	updateRes model.Booking
	updateErr error
}

func (s *rulesStub) ListBooking(context.Context, uint64) (model.BookingWithRoom, error) {
	return s.listRes, s.listErr
}

func (s *rulesStub) CreateBooking(context.Context, uint64, uint64) (model.Booking, error) {
	return s.createRes, s.createErr
}

func (s *rulesStub) UpdateBooking(context.Context, uint64, uint64, uint64) (model.Booking, error) {
	return s.updateRes, s.updateErr
}

// invoke runs a handler method the way Echo would, feeding any returned
// error through the shared HTTPErrorHandler.
func invoke(t *testing.T, stub *rulesStub, method, target, body string, userID any, fn func(*BookingHandler, echo.Context) error, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set("user_id", userID)
	}
	if len(params) == 2 {
		c.SetParamNames(params[0])
		c.SetParamValues(params[1])
	}
	h := NewBookingHandler(stub)
	if err := fn(h, c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestGetBooking(t *testing.T) {
	stub := &rulesStub{
		listRes: model.BookingWithRoom{ID: 4, Room: model.Room{ID: 2, Name: "1020", Capacity: 3, HotelID: 1}},
	}
	rec := invoke(t, stub, http.MethodGet, "/v1/booking", "", uint64(7),
		(*BookingHandler).GetBooking)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		ID   uint64 `json:"id"`
		Room struct {
			Name string `json:"name"`
		} `json:"room"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if got.ID != 4 || got.Room.Name != "1020" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestGetBookingNotFound(t *testing.T) {
	stub := &rulesStub{listErr: fmt.Errorf("user 7 has no booking: %w", service.ErrNotFound)}
	rec := invoke(t, stub, http.MethodGet, "/v1/booking", "", uint64(7),
		(*BookingHandler).GetBooking)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetBookingUnauthorized(t *testing.T) {
	rec := invoke(t, &rulesStub{}, http.MethodGet, "/v1/booking", "", nil,
		(*BookingHandler).GetBooking)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCreateBooking(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{"success", `{"roomId":3}`, nil, http.StatusOK},
		{"missing roomId", `{}`, nil, http.StatusBadRequest},
		{"malformed body", `{"roomId":`, nil, http.StatusBadRequest},
		{"rule violation", `{"roomId":3}`, fmt.Errorf("room 3 is full: %w", service.ErrCannotBook), http.StatusForbidden},
		{"unknown room", `{"roomId":99}`, fmt.Errorf("room 99: %w", service.ErrNotFound), http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &rulesStub{createRes: model.Booking{ID: 12, UserID: 7, RoomID: 3}, createErr: tc.err}
			rec := invoke(t, stub, http.MethodPost, "/v1/booking", tc.body, uint64(7),
				(*BookingHandler).CreateBooking)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d: %s", tc.wantCode, rec.Code, rec.Body.String())
			}
			if tc.wantCode == http.StatusOK {
				var got map[string]uint64
				if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
					t.Fatalf("bad body: %v", err)
				}
				if got["bookingId"] != 12 {
					t.Fatalf("expected bookingId 12, got %v", got)
				}
			}
		})
	}
}

func TestUpdateBooking(t *testing.T) {
	tests := []struct {
		name      string
		bookingID string
		body      string
		err       error
		wantCode  int
	}{
		{"success", "12", `{"roomId":5}`, nil, http.StatusOK},
		{"bad booking id", "abc", `{"roomId":5}`, nil, http.StatusBadRequest},
		{"missing roomId", "12", `{}`, nil, http.StatusBadRequest},
		{"not owner", "12", `{"roomId":5}`, fmt.Errorf("booking 12 belongs to another user: %w", service.ErrCannotBook), http.StatusForbidden},
		{"unknown booking", "99", `{"roomId":5}`, fmt.Errorf("booking 99: %w", service.ErrNotFound), http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &rulesStub{updateRes: model.Booking{ID: 12, UserID: 7, RoomID: 5}, updateErr: tc.err}
			rec := invoke(t, stub, http.MethodPut, "/v1/booking/"+tc.bookingID, tc.body, uint64(7),
				(*BookingHandler).UpdateBooking, "bookingId", tc.bookingID)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d: %s", tc.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHTTPErrorHandlerUnknownError(t *testing.T) {
	stub := &rulesStub{listErr: fmt.Errorf("connection reset")}
	rec := invoke(t, stub, http.MethodGet, "/v1/booking", "", uint64(7),
		(*BookingHandler).GetBooking)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Fatalf("internal error details must not leak to the client: %s", rec.Body.String())
	}
}
