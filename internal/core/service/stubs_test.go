package service

import (
	"context"
	"time"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
	"github.com/thugozi/foodtruck-api/internal/core/ports"
)

// In-memory repository stubs shared by the service tests.

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NotFoundf("User not found")
	}
	return u, nil
}

func (r *stubUserRepo) FindByPhone(_ context.Context, phone string) (*domain.User, error) {
	for _, u := range r.users {
		if u.PhoneNumber == phone {
			return u, nil
		}
	}
	return nil, domain.NotFoundf("User not found")
}

func (r *stubUserRepo) List(_ context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if filter.Students != nil && u.IsStudent != *filter.Students {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *stubUserRepo) ListActiveStudents(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.IsStudent && u.LoyaltyActive && u.DOB != "" {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) ApplyLoyalty(ctx context.Context, id, college, dob string) error {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	u.IsStudent = true
	u.College = college
	u.DOB = dob
	u.VerificationStatus = domain.VerificationNotStarted
	u.LoyaltyActive = false
	return nil
}

func (r *stubUserRepo) SetVerificationPending(ctx context.Context, id string) error {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	u.VerificationStatus = domain.VerificationPending
	return nil
}

func (r *stubUserRepo) ApproveVerification(ctx context.Context, id string, loyaltyActive bool) error {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	u.VerificationStatus = domain.VerificationApproved
	u.LoyaltyActive = loyaltyActive
	u.RejectionReason = ""
	return nil
}

func (r *stubUserRepo) RejectVerification(ctx context.Context, id, reason string) error {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	u.VerificationStatus = domain.VerificationRejected
	u.LoyaltyActive = false
	u.RejectionReason = reason
	return nil
}

func (r *stubUserRepo) SetLoyaltyActive(ctx context.Context, id string, active bool) error {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	u.LoyaltyActive = active
	return nil
}

func (r *stubUserRepo) AddPoints(ctx context.Context, id string, points int, lastVisit time.Time) error {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	u.Points += points
	t := lastVisit
	u.LastVisit = &t
	return nil
}

func (r *stubUserRepo) SetPoints(ctx context.Context, id string, points int) error {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	u.Points = points
	return nil
}

func (r *stubUserRepo) SetLastVisit(ctx context.Context, id string, t time.Time) error {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	visit := t
	u.LastVisit = &visit
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.NotFoundf("User not found")
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) Count(_ context.Context, filter ports.UserFilter) (int64, error) {
	var n int64
	for _, u := range r.users {
		if filter.Students != nil && u.IsStudent != *filter.Students {
			continue
		}
		n++
	}
	return n, nil
}

func (r *stubUserRepo) CountByVerificationStatus(_ context.Context, status domain.VerificationStatus) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.VerificationStatus == status {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) TotalPoints(_ context.Context) (int64, error) {
	var n int64
	for _, u := range r.users {
		n += int64(u.Points)
	}
	return n, nil
}

type stubBillRepo struct {
	bills []*domain.LoyaltyBill
}

func (r *stubBillRepo) Create(_ context.Context, b *domain.LoyaltyBill) error {
	for _, existing := range r.bills {
		if existing.BillNumber == b.BillNumber {
			return domain.Conflictf("This bill has already been submitted")
		}
	}
	r.bills = append(r.bills, b)
	return nil
}

func (r *stubBillRepo) FindByBillNumber(_ context.Context, billNumber string) (*domain.LoyaltyBill, error) {
	for _, b := range r.bills {
		if b.BillNumber == billNumber {
			return b, nil
		}
	}
	return nil, domain.NotFoundf("Bill not found")
}

func (r *stubBillRepo) ExistsForUserSince(_ context.Context, userID string, since time.Time) (bool, error) {
	for _, b := range r.bills {
		if b.UserID == userID && !b.Date.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubBillRepo) ListForUser(_ context.Context, userID string, limit int) ([]*domain.LoyaltyBill, error) {
	var out []*domain.LoyaltyBill
	for _, b := range r.bills {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubBillRepo) DeleteForUser(_ context.Context, userID string) error {
	kept := r.bills[:0]
	for _, b := range r.bills {
		if b.UserID != userID {
			kept = append(kept, b)
		}
	}
	r.bills = kept
	return nil
}

type stubVerificationRepo struct {
	items map[string]*domain.StudentIDVerification
}

func newStubVerificationRepo() *stubVerificationRepo {
	return &stubVerificationRepo{items: make(map[string]*domain.StudentIDVerification)}
}

func (r *stubVerificationRepo) Create(_ context.Context, v *domain.StudentIDVerification) error {
	r.items[v.ID] = v
	return nil
}

func (r *stubVerificationRepo) FindByID(_ context.Context, id string) (*domain.StudentIDVerification, error) {
	v, ok := r.items[id]
	if !ok {
		return nil, domain.NotFoundf("Verification request not found")
	}
	return v, nil
}

func (r *stubVerificationRepo) ListPending(_ context.Context) ([]*domain.StudentIDVerification, error) {
	var out []*domain.StudentIDVerification
	for _, v := range r.items {
		if v.Status == domain.SubmissionPending {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *stubVerificationRepo) DeletePendingForUser(_ context.Context, userID string) error {
	for id, v := range r.items {
		if v.UserID == userID && v.Status == domain.SubmissionPending {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *stubVerificationRepo) SetStatus(_ context.Context, id string, status domain.SubmissionStatus, reason string) error {
	v, ok := r.items[id]
	if !ok {
		return domain.NotFoundf("Verification request not found")
	}
	v.Status = status
	if reason != "" {
		v.RejectionReason = reason
	}
	return nil
}

func (r *stubVerificationRepo) DeleteForUser(_ context.Context, userID string) error {
	for id, v := range r.items {
		if v.UserID == userID {
			delete(r.items, id)
		}
	}
	return nil
}

type stubAuditRepo struct {
	entries []*domain.AuditEntry
}

func (r *stubAuditRepo) Append(_ context.Context, e *domain.AuditEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *stubAuditRepo) List(_ context.Context, filter ports.AuditFilter) ([]*domain.AuditEntry, error) {
	allowed := make(map[string]struct{}, len(filter.Actions))
	for _, a := range filter.Actions {
		allowed[a] = struct{}{}
	}
	var out []*domain.AuditEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if len(allowed) > 0 {
			if _, ok := allowed[e.Action]; !ok {
				continue
			}
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *stubAuditRepo) countAction(action string) int {
	n := 0
	for _, e := range r.entries {
		if e.Action == action {
			n++
		}
	}
	return n
}

type stubSettingsRepo struct {
	settings *domain.Settings
	closed   []*domain.ClosedDay
	about    *domain.AboutContent
}

func (r *stubSettingsRepo) Get(_ context.Context) (*domain.Settings, error) {
	if r.settings == nil {
		return nil, domain.NotFoundf("Shop settings not configured")
	}
	return r.settings, nil
}

func (r *stubSettingsRepo) Update(_ context.Context, s *domain.Settings) error {
	r.settings = s
	return nil
}

func (r *stubSettingsRepo) AddClosedDay(_ context.Context, date string) error {
	r.closed = append(r.closed, &domain.ClosedDay{Date: date})
	return nil
}

func (r *stubSettingsRepo) ListClosedDays(_ context.Context) ([]*domain.ClosedDay, error) {
	return r.closed, nil
}

func (r *stubSettingsRepo) GetAbout(_ context.Context) (*domain.AboutContent, error) {
	if r.about == nil {
		return nil, domain.NotFoundf("About content not configured")
	}
	return r.about, nil
}

func (r *stubSettingsRepo) UpdateAbout(_ context.Context, a *domain.AboutContent) error {
	r.about = a
	return nil
}

// stubExtractor returns canned OCR text.
type stubExtractor struct {
	text string
}

func (e *stubExtractor) ExtractText(context.Context, []byte) string {
	return e.text
}

// stubMarker is an in-memory daily bill marker; failErr simulates an
// unavailable Redis.
type stubMarker struct {
	seen    map[string]bool
	failErr error
}

func newStubMarker() *stubMarker {
	return &stubMarker{seen: make(map[string]bool)}
}

func (m *stubMarker) key(userID string, day time.Time) string {
	return userID + ":" + day.UTC().Format("2006-01-02")
}

func (m *stubMarker) Seen(_ context.Context, userID string, day time.Time) (bool, error) {
	if m.failErr != nil {
		return false, m.failErr
	}
	return m.seen[m.key(userID, day)], nil
}

func (m *stubMarker) Mark(_ context.Context, userID string, day time.Time) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.seen[m.key(userID, day)] = true
	return nil
}

type stubMenuRepo struct {
	items map[string]*domain.MenuItem
}

func newStubMenuRepo(items ...*domain.MenuItem) *stubMenuRepo {
	r := &stubMenuRepo{items: make(map[string]*domain.MenuItem)}
	for _, m := range items {
		r.items[m.ID] = m
	}
	return r
}

func (r *stubMenuRepo) Create(_ context.Context, m *domain.MenuItem) error {
	r.items[m.ID] = m
	return nil
}

func (r *stubMenuRepo) FindByID(_ context.Context, id string) (*domain.MenuItem, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, domain.NotFoundf("Menu item not found")
	}
	return m, nil
}

func (r *stubMenuRepo) List(_ context.Context, availableOnly bool) ([]*domain.MenuItem, error) {
	var out []*domain.MenuItem
	for _, m := range r.items {
		if availableOnly && !m.Available {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *stubMenuRepo) Update(_ context.Context, m *domain.MenuItem) error {
	if _, ok := r.items[m.ID]; !ok {
		return domain.NotFoundf("Menu item not found")
	}
	r.items[m.ID] = m
	return nil
}

func (r *stubMenuRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.NotFoundf("Menu item not found")
	}
	delete(r.items, id)
	return nil
}

type stubOrderRepo struct {
	orders []*domain.Order
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.orders = append(r.orders, o)
	return nil
}

func (r *stubOrderRepo) FindForUser(_ context.Context, id, userID string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.ID == id && o.UserID == userID {
			return o, nil
		}
	}
	return nil, domain.NotFoundf("Order not found")
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, domain.NotFoundf("Order not found")
}

func (r *stubOrderRepo) ListForUser(_ context.Context, userID string, limit int) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) ListAll(_ context.Context, limit int) ([]*domain.Order, error) {
	return r.orders, nil
}

func (r *stubOrderRepo) SetStatus(ctx context.Context, id string, status domain.OrderStatus, _ time.Time) error {
	o, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	o.Status = status
	return nil
}

func (r *stubOrderRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, o := range r.orders {
		if !o.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *stubOrderRepo) DeleteForUser(_ context.Context, userID string) error {
	kept := r.orders[:0]
	for _, o := range r.orders {
		if o.UserID != userID {
			kept = append(kept, o)
		}
	}
	r.orders = kept
	return nil
}

type stubCouponRepo struct {
	coupons map[string]*domain.Coupon
}

func newStubCouponRepo(coupons ...*domain.Coupon) *stubCouponRepo {
	r := &stubCouponRepo{coupons: make(map[string]*domain.Coupon)}
	for _, c := range coupons {
		r.coupons[c.ID] = c
	}
	return r
}

func (r *stubCouponRepo) Create(_ context.Context, c *domain.Coupon) error {
	r.coupons[c.ID] = c
	return nil
}

func (r *stubCouponRepo) FindByCode(_ context.Context, code string, activeOnly bool) (*domain.Coupon, error) {
	for _, c := range r.coupons {
		if c.Code == code && (!activeOnly || c.Active) {
			return c, nil
		}
	}
	return nil, domain.NotFoundf("Coupon not found")
}

func (r *stubCouponRepo) List(_ context.Context) ([]*domain.Coupon, error) {
	var out []*domain.Coupon
	for _, c := range r.coupons {
		out = append(out, c)
	}
	return out, nil
}

func (r *stubCouponRepo) SetActive(_ context.Context, id string, active bool) error {
	c, ok := r.coupons[id]
	if !ok {
		return domain.NotFoundf("Coupon not found")
	}
	c.Active = active
	return nil
}

func (r *stubCouponRepo) IncrementUsage(_ context.Context, id string) error {
	c, ok := r.coupons[id]
	if !ok {
		return domain.NotFoundf("Coupon not found")
	}
	c.UsedCount++
	return nil
}

func (r *stubCouponRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.coupons[id]; !ok {
		return domain.NotFoundf("Coupon not found")
	}
	delete(r.coupons, id)
	return nil
}
