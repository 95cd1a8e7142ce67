package order_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbcbeauty/storefront/core/order"
)

// fakeBackend answers scripted JSON payloads.
type fakeBackend struct {
	getBody  string
	getErr   error
	postErr  error
	putErr   error
	lastPath string
	lastBody any
}

func (f *fakeBackend) Get(_ context.Context, path string, out any) error {
	f.lastPath = path
	if f.getErr != nil {
		return f.getErr
	}
	return json.Unmarshal([]byte(f.getBody), out)
}

func (f *fakeBackend) Post(_ context.Context, path string, body, out any) error {
	f.lastPath = path
	f.lastBody = body
	if f.postErr != nil {
		return f.postErr
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return err
	}
	out.(*order.Order).OrderID = "ORD-1042"
	return nil
}

func (f *fakeBackend) Put(_ context.Context, path string, body, out any) error {
	f.lastPath = path
	f.lastBody = body
	if f.putErr != nil {
		return f.putErr
	}
	*out.(*order.Order) = order.Order{OrderID: "ORD-1042", Status: order.StatusShipped}
	return nil
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns the generated order id", func(t *testing.T) {
		t.Parallel()

		backend := &fakeBackend{}
		svc := order.NewService(backend)

		created, err := svc.Create(ctx, order.Order{
			Name:          "Jane Doe",
			Address:       "1 Main St",
			Phone:         "555-0101",
			OrderedItems:  []order.Item{{ProductID: "CB001", Qty: 2}},
			TotalAmount:   decimal.NewFromFloat(79.98),
			PaymentMethod: order.PaymentCashOnDelivery,
		})
		require.NoError(t, err)
		assert.Equal(t, "ORD-1042", created.OrderID)
		assert.Equal(t, "/orders", backend.lastPath)
	})

	t.Run("defaults status to pending", func(t *testing.T) {
		t.Parallel()

		backend := &fakeBackend{}
		svc := order.NewService(backend)

		created, err := svc.Create(ctx, order.Order{Name: "Jane"})
		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, created.Status)
	})

	t.Run("backend failure propagates", func(t *testing.T) {
		t.Parallel()

		backend := &fakeBackend{postErr: errors.New("boom")}
		svc := order.NewService(backend)

		_, err := svc.Create(ctx, order.Order{})
		assert.Error(t, err)
	})
}

func TestServiceAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("bare array response", func(t *testing.T) {
		t.Parallel()

		backend := &fakeBackend{getBody: `[{"orderId":"A","status":"pending"},{"orderId":"B","status":"shipped"}]`}
		svc := order.NewService(backend)

		orders, err := svc.All(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, order.StatusShipped, orders[1].Status)
	})

	t.Run("data wrapper response", func(t *testing.T) {
		t.Parallel()

		backend := &fakeBackend{getBody: `{"data":[{"orderId":"A","status":"delivered"}]}`}
		svc := order.NewService(backend)

		orders, err := svc.All(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, order.StatusDelivered, orders[0].Status)
	})
}

func TestServiceGetUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("get by id", func(t *testing.T) {
		t.Parallel()

		backend := &fakeBackend{getBody: `{"orderId":"ORD-7","status":"processing"}`}
		svc := order.NewService(backend)

		o, err := svc.Get(ctx, "ORD-7")
		require.NoError(t, err)
		assert.Equal(t, "ORD-7", o.OrderID)
		assert.Equal(t, "/orders/ORD-7", backend.lastPath)
	})

	t.Run("update patches status", func(t *testing.T) {
		t.Parallel()

		backend := &fakeBackend{}
		svc := order.NewService(backend)

		updated, err := svc.Update(ctx, "ORD-1042", order.UpdateParams{Status: order.StatusShipped})
		require.NoError(t, err)
		assert.Equal(t, order.StatusShipped, updated.Status)
	})

	t.Run("missing id rejected", func(t *testing.T) {
		t.Parallel()

		svc := order.NewService(&fakeBackend{})

		_, err := svc.Get(ctx, "")
		assert.ErrorIs(t, err, order.ErrMissingOrderID)
		_, err = svc.Update(ctx, "", order.UpdateParams{})
		assert.ErrorIs(t, err, order.ErrMissingOrderID)
	})
}

func TestStatusMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Your order has been shipped!", order.StatusShipped.Message())
	assert.Equal(t, "Your order status has been updated", order.Status("unknown").Message())
}

func TestTracking(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://shop.example.com/orders/ORD-7",
		order.TrackingURL("https://shop.example.com/", "ORD-7"))

	png, err := order.TrackingQR("https://shop.example.com", "ORD-7", 128)
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	_, err = order.TrackingQR("https://shop.example.com", "", 128)
	assert.ErrorIs(t, err, order.ErrMissingOrderID)
}
