package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
	"github.com/thugozi/foodtruck-api/internal/core/ports"
)

func newTestAdminService(
	users *stubUserRepo,
	bills *stubBillRepo,
	orders *stubOrderRepo,
	verifications *stubVerificationRepo,
	audit *stubAuditRepo,
	now time.Time,
) *adminService {
	svc := NewAdminService(users, bills, orders, verifications, audit, zerolog.Nop()).(*adminService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestDeleteUser_Cascades(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	users := newStubUserRepo(activeStudent("u1"), activeStudent("u2"))
	bills := &stubBillRepo{bills: []*domain.LoyaltyBill{
		{ID: "b1", UserID: "u1", BillNumber: "111111"},
		{ID: "b2", UserID: "u2", BillNumber: "222222"},
	}}
	orders := &stubOrderRepo{orders: []*domain.Order{
		{ID: "o1", UserID: "u1"},
		{ID: "o2", UserID: "u2"},
	}}
	verifications := newStubVerificationRepo()
	verifications.items["v1"] = &domain.StudentIDVerification{ID: "v1", UserID: "u1", Status: domain.SubmissionPending}
	audit := &stubAuditRepo{}
	svc := newTestAdminService(users, bills, orders, verifications, audit, now)

	if err := svc.DeleteUser(context.Background(), "admin-1", "u1"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if _, err := users.FindByID(context.Background(), "u1"); !domain.IsNotFound(err) {
		t.Errorf("user still present: %v", err)
	}
	if len(bills.bills) != 1 || bills.bills[0].UserID != "u2" {
		t.Errorf("bills after cascade = %+v", bills.bills)
	}
	if len(orders.orders) != 1 || orders.orders[0].UserID != "u2" {
		t.Errorf("orders after cascade = %+v", orders.orders)
	}
	if len(verifications.items) != 0 {
		t.Errorf("verifications after cascade = %d, want 0", len(verifications.items))
	}
	if n := audit.countAction(domain.ActionUserDeleted); n != 1 {
		t.Fatalf("audit entries = %d, want 1", n)
	}
	if audit.entries[0].Details["user_name"] != "Asha" {
		t.Errorf("audit details = %v", audit.entries[0].Details)
	}
}

func TestDeleteUser_Unknown(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestAdminService(newStubUserRepo(), &stubBillRepo{}, &stubOrderRepo{}, newStubVerificationRepo(), &stubAuditRepo{}, now)

	if err := svc.DeleteUser(context.Background(), "admin-1", "ghost"); !domain.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestDisableLoyalty(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	user := activeStudent("u1")
	audit := &stubAuditRepo{}
	svc := newTestAdminService(newStubUserRepo(user), &stubBillRepo{}, &stubOrderRepo{}, newStubVerificationRepo(), audit, now)

	if err := svc.DisableLoyalty(context.Background(), "admin-1", "u1"); err != nil {
		t.Fatalf("DisableLoyalty: %v", err)
	}
	if user.LoyaltyActive {
		t.Error("loyalty should be disabled")
	}
	if n := audit.countAction(domain.ActionLoyaltyDisabled); n != 1 {
		t.Errorf("audit entries = %d, want 1", n)
	}
}

func TestResetAndRestorePoints(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	user := activeStudent("u1")
	user.Points = 9
	audit := &stubAuditRepo{}
	svc := newTestAdminService(newStubUserRepo(user), &stubBillRepo{}, &stubOrderRepo{}, newStubVerificationRepo(), audit, now)

	if err := svc.ResetPoints(context.Background(), "admin-1", "u1"); err != nil {
		t.Fatalf("ResetPoints: %v", err)
	}
	if user.Points != 0 {
		t.Errorf("points after reset = %d, want 0", user.Points)
	}

	if err := svc.RestorePoints(context.Background(), "admin-1", "u1", 6); err != nil {
		t.Fatalf("RestorePoints: %v", err)
	}
	if user.Points != 6 {
		t.Errorf("points after restore = %d, want 6", user.Points)
	}
	if n := audit.countAction(domain.ActionPointsReset); n != 1 {
		t.Errorf("reset audit entries = %d, want 1", n)
	}
	if n := audit.countAction(domain.ActionPointsRestored); n != 1 {
		t.Errorf("restore audit entries = %d, want 1", n)
	}
}

func TestRestorePoints_RejectsNegative(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestAdminService(newStubUserRepo(activeStudent("u1")), &stubBillRepo{}, &stubOrderRepo{}, newStubVerificationRepo(), &stubAuditRepo{}, now)

	err := svc.RestorePoints(context.Background(), "admin-1", "u1", -3)
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestDashboard(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	approved := activeStudent("u1")
	approved.VerificationStatus = domain.VerificationApproved
	approved.Points = 4
	pending := activeStudent("u2")
	pending.VerificationStatus = domain.VerificationPending
	pending.Points = 3
	users := newStubUserRepo(approved, pending)

	orders := &stubOrderRepo{orders: []*domain.Order{
		{ID: "o1", UserID: "u1", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "o2", UserID: "u2", CreatedAt: now.Add(-48 * time.Hour)},
	}}
	svc := newTestAdminService(users, &stubBillRepo{}, orders, newStubVerificationRepo(), &stubAuditRepo{}, now)

	stats, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	want := &ports.DashboardStats{TotalUsers: 2, ActiveUsers: 1, OrdersToday: 1, PointsIssued: 7}
	if *stats != *want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestAdminLogs_Limit(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	audit := &stubAuditRepo{}
	for i := 0; i < 5; i++ {
		audit.entries = append(audit.entries, &domain.AuditEntry{
			ID: string(rune('a' + i)), Action: domain.ActionPointsReset, Timestamp: now,
		})
	}
	svc := newTestAdminService(newStubUserRepo(), &stubBillRepo{}, &stubOrderRepo{}, newStubVerificationRepo(), audit, now)

	entries, err := svc.Logs(context.Background(), 3)
	if err != nil {
		t.Fatalf("Logs: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("entries = %d, want 3", len(entries))
	}
}
