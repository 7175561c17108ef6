package services

import (
	"sort"

	"resto_staff_backend/internal/models"
	"resto_staff_backend/internal/repositories"
)

// In-memory fakes for the repository interfaces. They mirror the semantics of
// the SQL implementations closely enough for service-level tests: active means
// a non-terminal status, listings follow the same ordering, and AcceptOrder
// re-checks the unset-waiter precondition at write time.

type fakeEmployeeRepo struct {
	employees map[int64]*models.Employee
	byDigits  map[string]*models.Employee
	passwords map[int64]string
}

func newFakeEmployeeRepo(employees ...*models.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{
		employees: map[int64]*models.Employee{},
		byDigits:  map[string]*models.Employee{},
		passwords: map[int64]string{},
	}
	for _, e := range employees {
		r.employees[e.ID] = e
	}
	return r
}

func (r *fakeEmployeeRepo) FindByPhoneDigits(digits string) (*models.Employee, error) {
	if e, ok := r.byDigits[digits]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeEmployeeRepo) FindByID(employeeID int64) (*models.Employee, error) {
	if e, ok := r.employees[employeeID]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeEmployeeRepo) SetOnShift(_ repositories.SQLExecutor, employeeID int64, onShift bool) error {
	e, ok := r.employees[employeeID]
	if !ok {
		return repositories.ErrNotFound
	}
	e.IsOnShift = onShift
	return nil
}

func (r *fakeEmployeeRepo) SetPasswordHash(_ repositories.SQLExecutor, employeeID int64, hash string) error {
	if _, ok := r.employees[employeeID]; !ok {
		return repositories.ErrNotFound
	}
	r.passwords[employeeID] = hash
	return nil
}

type fakeStatusRepo struct {
	statuses []models.OrderStatus
}

func (r *fakeStatusRepo) GetByID(statusID int64) (*models.OrderStatus, error) {
	for i := range r.statuses {
		if r.statuses[i].ID == statusID {
			st := r.statuses[i]
			return &st, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeStatusRepo) GetByName(name string) (*models.OrderStatus, error) {
	for i := range r.statuses {
		if r.statuses[i].Name == name {
			st := r.statuses[i]
			return &st, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeStatusRepo) ListVisible(facet models.StatusFacet) ([]models.OrderStatus, error) {
	visible := []models.OrderStatus{}
	for _, st := range r.statuses {
		switch facet {
		case models.FacetChef:
			if st.VisibleToChef {
				visible = append(visible, st)
			}
		case models.FacetBartender:
			if st.VisibleToBartender {
				visible = append(visible, st)
			}
		case models.FacetWaiter:
			if st.VisibleToWaiter {
				visible = append(visible, st)
			}
		case models.FacetCourier:
			if st.VisibleToCourier {
				visible = append(visible, st)
			}
		}
	}
	return visible, nil
}

func (r *fakeStatusRepo) GetTerminal() (*models.OrderStatus, error) {
	for i := range r.statuses {
		if r.statuses[i].IsCompleted {
			st := r.statuses[i]
			return &st, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakeTableRepo struct {
	tables   map[int64]models.Table
	byWaiter map[int64][]models.Table
}

func newFakeTableRepo(tables ...models.Table) *fakeTableRepo {
	r := &fakeTableRepo{tables: map[int64]models.Table{}, byWaiter: map[int64][]models.Table{}}
	for _, t := range tables {
		r.tables[t.ID] = t
	}
	return r
}

func (r *fakeTableRepo) GetByID(tableID int64) (*models.Table, error) {
	if t, ok := r.tables[tableID]; ok {
		return &t, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeTableRepo) ListByWaiter(employeeID int64) ([]models.Table, error) {
	return r.byWaiter[employeeID], nil
}

type fakeMenuRepo struct {
	categories []models.Category
	products   map[int64]models.Product
}

func (r *fakeMenuRepo) ListRestaurantCategories() ([]models.Category, error) {
	return r.categories, nil
}

func (r *fakeMenuRepo) ListActiveProducts(categoryID int64) ([]models.Product, error) {
	products := []models.Product{}
	for _, p := range r.products {
		if p.CategoryID == categoryID && p.IsActive {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *fakeMenuRepo) GetProductsByIDs(productIDs []int64) (map[int64]models.Product, error) {
	found := map[int64]models.Product{}
	for _, id := range productIDs {
		if p, ok := r.products[id]; ok {
			found[id] = p
		}
	}
	return found, nil
}

type shiftLink struct {
	OrderID    int64
	EmployeeID int64
}

type debtEntry struct {
	OrderID    int64
	EmployeeID int64
	Amount     float64
}

type fakeCashRepo struct {
	links []shiftLink
	debts []debtEntry
}

func (r *fakeCashRepo) LinkOrderToShift(_ repositories.SQLExecutor, orderID, employeeID int64) error {
	for _, l := range r.links {
		if l.OrderID == orderID && l.EmployeeID == employeeID {
			return nil // conflict target: already linked
		}
	}
	r.links = append(r.links, shiftLink{OrderID: orderID, EmployeeID: employeeID})
	return nil
}

func (r *fakeCashRepo) RegisterEmployeeDebt(_ repositories.SQLExecutor, orderID, employeeID int64, amount float64) error {
	for _, d := range r.debts {
		if d.OrderID == orderID && d.EmployeeID == employeeID {
			return nil
		}
	}
	r.debts = append(r.debts, debtEntry{OrderID: orderID, EmployeeID: employeeID, Amount: amount})
	return nil
}

type fakeOrderRepo struct {
	orders     map[int64]*models.Order
	statusByID map[int64]models.OrderStatus
	history    []models.OrderStatusHistory
	nextID     int64

	// tablesByWaiter mirrors the table_waiters relation the waiter
	// listing joins against.
	tablesByWaiter map[int64][]int64

	// beforeAccept runs just before the accept write, letting tests
	// interleave a concurrent accept between the read and the write.
	beforeAccept func()
}

func newFakeOrderRepo(statuses []models.OrderStatus, orders ...*models.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[int64]*models.Order{}, statusByID: map[int64]models.OrderStatus{}, nextID: 1000}
	for _, st := range statuses {
		r.statusByID[st.ID] = st
	}
	for _, o := range orders {
		if o.Status == nil {
			if st, ok := r.statusByID[o.StatusID]; ok {
				copied := st
				o.Status = &copied
			}
		}
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) active(o *models.Order) bool {
	return o.Status != nil && !o.Status.IsTerminal()
}

func (r *fakeOrderRepo) GetByID(orderID int64) (*models.Order, error) {
	if o, ok := r.orders[orderID]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeOrderRepo) GetWithItems(orderID int64) (*models.Order, error) {
	return r.GetByID(orderID)
}

func (r *fakeOrderRepo) sorted(desc bool, keep func(*models.Order) bool) []models.Order {
	result := []models.Order{}
	for _, o := range r.orders {
		if keep(o) {
			result = append(result, *o)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if desc {
			return result[i].ID > result[j].ID
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (r *fakeOrderRepo) ListProduction(statusIDs []int64, station string) ([]models.Order, error) {
	wanted := map[int64]bool{}
	for _, id := range statusIDs {
		wanted[id] = true
	}
	return r.sorted(false, func(o *models.Order) bool {
		if !wanted[o.StatusID] {
			return false
		}
		if station == models.StationBar {
			return !o.BarDone
		}
		return !o.KitchenDone
	}), nil
}

func (r *fakeOrderRepo) ListForCourier(courierID int64) ([]models.Order, error) {
	return r.sorted(true, func(o *models.Order) bool {
		return r.active(o) && o.CourierID != nil && *o.CourierID == courierID
	}), nil
}

func (r *fakeOrderRepo) ListForWaiter(waiterID int64) ([]models.Order, error) {
	assigned := map[int64]bool{}
	for _, tableID := range r.tablesByWaiter[waiterID] {
		assigned[tableID] = true
	}
	return r.sorted(true, func(o *models.Order) bool {
		if !r.active(o) {
			return false
		}
		if o.AcceptedByWaiterID != nil && *o.AcceptedByWaiterID == waiterID {
			return true
		}
		return o.TableID != nil && assigned[*o.TableID]
	}), nil
}

func (r *fakeOrderRepo) ListActive(limit int) ([]models.Order, error) {
	result := r.sorted(true, r.active)
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeOrderRepo) ListActiveByTable(tableID int64) ([]models.Order, error) {
	return r.sorted(true, func(o *models.Order) bool {
		return r.active(o) && o.TableID != nil && *o.TableID == tableID
	}), nil
}

func (r *fakeOrderRepo) CountActiveByTable(tableID int64) (int, error) {
	orders, _ := r.ListActiveByTable(tableID)
	return len(orders), nil
}

func (r *fakeOrderRepo) Create(_ repositories.SQLExecutor, order *models.Order) (int64, error) {
	r.nextID++
	order.ID = r.nextID
	copied := *order
	if st, ok := r.statusByID[order.StatusID]; ok {
		stCopy := st
		copied.Status = &stCopy
	}
	r.orders[copied.ID] = &copied
	return copied.ID, nil
}

func (r *fakeOrderRepo) CreateItem(_ repositories.SQLExecutor, item *models.OrderItem) (int64, error) {
	o, ok := r.orders[item.OrderID]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	r.nextID++
	item.ID = r.nextID
	o.Items = append(o.Items, *item)
	return item.ID, nil
}

func (r *fakeOrderRepo) SetStationDone(_ repositories.SQLExecutor, orderID int64, station string) error {
	o, ok := r.orders[orderID]
	if !ok {
		return repositories.ErrNotFound
	}
	if station == models.StationBar {
		o.BarDone = true
	} else {
		o.KitchenDone = true
	}
	return nil
}

func (r *fakeOrderRepo) AcceptOrder(_ repositories.SQLExecutor, orderID, waiterID int64) error {
	if r.beforeAccept != nil {
		r.beforeAccept()
		r.beforeAccept = nil
	}
	o, ok := r.orders[orderID]
	if !ok || o.AcceptedByWaiterID != nil {
		return repositories.ErrNotFound // zero rows matched the conditional update
	}
	o.AcceptedByWaiterID = &waiterID
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(_ repositories.SQLExecutor, orderID, statusID int64) error {
	o, ok := r.orders[orderID]
	if !ok {
		return repositories.ErrNotFound
	}
	o.StatusID = statusID
	if st, found := r.statusByID[statusID]; found {
		copied := st
		o.Status = &copied
	}
	return nil
}

func (r *fakeOrderRepo) SetPayment(_ repositories.SQLExecutor, orderID, statusID int64, paymentMethod string) error {
	if err := r.UpdateStatus(nil, orderID, statusID); err != nil {
		return err
	}
	r.orders[orderID].PaymentMethod = &paymentMethod
	return nil
}

func (r *fakeOrderRepo) AppendHistory(_ repositories.SQLExecutor, entry *models.OrderStatusHistory) error {
	r.history = append(r.history, *entry)
	return nil
}

// fakeTxManager runs the unit of work without a real transaction and counts
// committed units.
type fakeTxManager struct {
	commits int
}

func (m *fakeTxManager) WithinTx(fn func(tx repositories.SQLExecutor) error) error {
	if err := fn(nil); err != nil {
		return err
	}
	m.commits++
	return nil
}

type notifierCall struct {
	Kind    string
	OrderID int64
	Detail  string // old status, station, depending on kind
	Actor   string
}

type recordingNotifier struct {
	calls []notifierCall
}

func (n *recordingNotifier) NotifyStatusChange(order *models.Order, oldStatus string, actor string) {
	n.calls = append(n.calls, notifierCall{Kind: "status_change", OrderID: order.ID, Detail: oldStatus, Actor: actor})
}

func (n *recordingNotifier) NotifyNewOrder(order *models.Order) {
	n.calls = append(n.calls, notifierCall{Kind: "new_order", OrderID: order.ID})
}

func (n *recordingNotifier) NotifyStationCompletion(order *models.Order, station string) {
	n.calls = append(n.calls, notifierCall{Kind: "station_completion", OrderID: order.ID, Detail: station})
}
