package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
	"github.com/thugozi/foodtruck-api/internal/core/ports"
)

func newTestOrderService(
	orders *stubOrderRepo,
	menu *stubMenuRepo,
	coupons *stubCouponRepo,
	settings *stubSettingsRepo,
	audit *stubAuditRepo,
	now time.Time,
) *orderService {
	svc := NewOrderService(orders, menu, coupons, settings, audit, zerolog.Nop()).(*orderService)
	svc.now = func() time.Time { return now }
	return svc
}

// shopLocationInput places the delivery at the shop's own coordinates so the
// radius check always passes with the default settings.
func shopLocationInput(items []domain.OrderItem, coupon string) ports.CreateOrderInput {
	cfg := domain.DefaultSettings()
	return ports.CreateOrderInput{
		Items:           items,
		DeliveryAddress: "Hostel Block C, Room 12",
		Latitude:        cfg.ShopLatitude,
		Longitude:       cfg.ShopLongitude,
		CouponCode:      coupon,
	}
}

func TestCreateOrder_PricesItemsAndDelivery(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	orders := &stubOrderRepo{}
	menu := newStubMenuRepo(&domain.MenuItem{ID: "m1", Name: "Paneer Roll", Price: 80, Available: true})
	svc := newTestOrderService(orders, menu, newStubCouponRepo(), &stubSettingsRepo{}, &stubAuditRepo{}, now)

	in := shopLocationInput([]domain.OrderItem{
		{MenuItemID: "m1", Quantity: 2, Price: 80},
		{MenuItemID: "ghost", Quantity: 1, Price: 40},
	}, "")
	order, err := svc.Create(context.Background(), "u1", in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if order.TotalAmount != 200 {
		t.Errorf("total = %v, want 200", order.TotalAmount)
	}
	if order.DeliveryFee != 50 {
		t.Errorf("delivery fee = %v, want 50", order.DeliveryFee)
	}
	if order.FinalAmount != 250 {
		t.Errorf("final = %v, want 250", order.FinalAmount)
	}
	if order.Status != domain.OrderPending {
		t.Errorf("status = %q, want pending", order.Status)
	}
	if order.Items[0].Name != "Paneer Roll" {
		t.Errorf("item name = %q, want resolved menu name", order.Items[0].Name)
	}
	if order.Items[1].Name != "Unknown Item" {
		t.Errorf("missing menu item name = %q, want Unknown Item", order.Items[1].Name)
	}
	if len(orders.orders) != 1 {
		t.Fatalf("stored orders = %d, want 1", len(orders.orders))
	}
}

func TestCreateOrder_BeyondRadius(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestOrderService(&stubOrderRepo{}, newStubMenuRepo(), newStubCouponRepo(), &stubSettingsRepo{}, &stubAuditRepo{}, now)

	in := shopLocationInput([]domain.OrderItem{{MenuItemID: "m1", Quantity: 1, Price: 100}}, "")
	in.Latitude = 19.0760 // Mumbai, far outside the Delhi radius
	in.Longitude = 72.8777

	_, err := svc.Create(context.Background(), "u1", in)
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	want := "Delivery not available. Location is beyond 2.0km radius."
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestCreateOrder_FlatCoupon(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	coupons := newStubCouponRepo(&domain.Coupon{
		ID: "c1", Code: "FLAT30", Type: domain.CouponFlat, Value: 30,
		MinOrder: 100, ExpiryDate: now.Add(72 * time.Hour), UsageLimit: 10, Active: true,
	})
	svc := newTestOrderService(&stubOrderRepo{}, newStubMenuRepo(), coupons, &stubSettingsRepo{}, &stubAuditRepo{}, now)

	in := shopLocationInput([]domain.OrderItem{{MenuItemID: "m1", Quantity: 2, Price: 75}}, "FLAT30")
	order, err := svc.Create(context.Background(), "u1", in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.Discount != 30 {
		t.Errorf("discount = %v, want 30", order.Discount)
	}
	if order.FinalAmount != 150+50-30 {
		t.Errorf("final = %v, want 170", order.FinalAmount)
	}
	if coupons.coupons["c1"].UsedCount != 1 {
		t.Errorf("used count = %d, want 1", coupons.coupons["c1"].UsedCount)
	}
}

func TestCreateOrder_PercentageCoupon(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	coupons := newStubCouponRepo(&domain.Coupon{
		ID: "c1", Code: "STUDENT10", Type: domain.CouponPercentage, Value: 10,
		ExpiryDate: now.Add(72 * time.Hour), UsageLimit: 100, Active: true,
	})
	svc := newTestOrderService(&stubOrderRepo{}, newStubMenuRepo(), coupons, &stubSettingsRepo{}, &stubAuditRepo{}, now)

	in := shopLocationInput([]domain.OrderItem{{MenuItemID: "m1", Quantity: 1, Price: 200}}, "STUDENT10")
	order, err := svc.Create(context.Background(), "u1", in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.Discount != 20 {
		t.Errorf("discount = %v, want 20", order.Discount)
	}
}

func TestCreateOrder_CouponBelowMinimum(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	coupons := newStubCouponRepo(&domain.Coupon{
		ID: "c1", Code: "BIG", Type: domain.CouponFlat, Value: 50,
		MinOrder: 200, ExpiryDate: now.Add(72 * time.Hour), UsageLimit: 10, Active: true,
	})
	svc := newTestOrderService(&stubOrderRepo{}, newStubMenuRepo(), coupons, &stubSettingsRepo{}, &stubAuditRepo{}, now)

	in := shopLocationInput([]domain.OrderItem{{MenuItemID: "m1", Quantity: 1, Price: 150}}, "BIG")
	_, err := svc.Create(context.Background(), "u1", in)
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	want := "Minimum order amount is ₹200"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
	if coupons.coupons["c1"].UsedCount != 0 {
		t.Errorf("used count = %d, want 0", coupons.coupons["c1"].UsedCount)
	}
}

func TestCreateOrder_ExpiredCoupon(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	coupons := newStubCouponRepo(&domain.Coupon{
		ID: "c1", Code: "OLD", Type: domain.CouponFlat, Value: 10,
		ExpiryDate: now.Add(-time.Hour), UsageLimit: 10, Active: true,
	})
	svc := newTestOrderService(&stubOrderRepo{}, newStubMenuRepo(), coupons, &stubSettingsRepo{}, &stubAuditRepo{}, now)

	in := shopLocationInput([]domain.OrderItem{{MenuItemID: "m1", Quantity: 1, Price: 150}}, "OLD")
	_, err := svc.Create(context.Background(), "u1", in)
	if !domain.IsValidation(err) || err.Error() != "Coupon expired" {
		t.Fatalf("err = %v, want Coupon expired validation error", err)
	}
}

func TestCreateOrder_UnknownCouponIgnored(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestOrderService(&stubOrderRepo{}, newStubMenuRepo(), newStubCouponRepo(), &stubSettingsRepo{}, &stubAuditRepo{}, now)

	in := shopLocationInput([]domain.OrderItem{{MenuItemID: "m1", Quantity: 1, Price: 100}}, "NOPE")
	order, err := svc.Create(context.Background(), "u1", in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.Discount != 0 {
		t.Errorf("discount = %v, want 0", order.Discount)
	}
}

func TestOrderGet_ScopedToOwner(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	orders := &stubOrderRepo{orders: []*domain.Order{{ID: "o1", UserID: "u1", Status: domain.OrderPending}}}
	svc := newTestOrderService(orders, newStubMenuRepo(), newStubCouponRepo(), &stubSettingsRepo{}, &stubAuditRepo{}, now)

	if _, err := svc.Get(context.Background(), "u1", "o1"); err != nil {
		t.Fatalf("owner Get: %v", err)
	}
	if _, err := svc.Get(context.Background(), "u2", "o1"); !domain.IsNotFound(err) {
		t.Fatalf("foreign Get err = %v, want NotFoundError", err)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	orders := &stubOrderRepo{orders: []*domain.Order{{ID: "o1", UserID: "u1", Status: domain.OrderPending}}}
	audit := &stubAuditRepo{}
	svc := newTestOrderService(orders, newStubMenuRepo(), newStubCouponRepo(), &stubSettingsRepo{}, audit, now)

	if err := svc.UpdateStatus(context.Background(), "admin-1", "o1", domain.OrderPreparing); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if orders.orders[0].Status != domain.OrderPreparing {
		t.Errorf("status = %q, want preparing", orders.orders[0].Status)
	}
	if n := audit.countAction(domain.ActionOrderStatusUpdated); n != 1 {
		t.Fatalf("audit entries = %d, want 1", n)
	}
	details := audit.entries[0].Details
	if details["old_status"] != "pending" || details["new_status"] != "preparing" {
		t.Errorf("audit details = %v, want old pending / new preparing", details)
	}
}

func TestUpdateOrderStatus_InvalidStatus(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestOrderService(&stubOrderRepo{}, newStubMenuRepo(), newStubCouponRepo(), &stubSettingsRepo{}, &stubAuditRepo{}, now)

	err := svc.UpdateStatus(context.Background(), "admin-1", "o1", domain.OrderStatus("teleported"))
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}
