package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/langchou/mallpark/internal/billing"
	"github.com/langchou/mallpark/internal/models"
	"github.com/langchou/mallpark/internal/repository"
	"github.com/langchou/mallpark/internal/teststore"
)

func newTestService(t *testing.T) (*ParkingService, *teststore.Store) {
	t.Helper()
	store := teststore.New()
	svc := NewParkingService(zap.NewNop(), store, billing.NewCalculator(billing.DefaultRates()))
	return svc, store
}

func addSlot(t *testing.T, store *teststore.Store, number string, slotType models.SlotType, hasCharger bool) *models.ParkingSlot {
	t.Helper()
	slot := &models.ParkingSlot{
		SlotNumber: number,
		SlotType:   slotType,
		Status:     models.SlotAvailable,
		HasCharger: hasCharger,
	}
	if err := store.Slots().Create(context.Background(), slot); err != nil {
		t.Fatalf("create slot %s: %v", number, err)
	}
	return slot
}

func TestVehicleEntryExitRoundTrip(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	slot := addSlot(t, store, "R1", models.SlotRegular, false)

	entryTime := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return entryTime }

	resp, err := svc.VehicleEntry(ctx, models.VehicleEntryRequest{
		NumberPlate: "KA01AB1234",
		VehicleType: models.VehicleCar,
		BillingType: models.BillingHourly,
	})
	if err != nil {
		t.Fatalf("VehicleEntry: %v", err)
	}
	if resp.AssignedSlot.ID != slot.ID {
		t.Fatalf("assigned slot = %d, want %d", resp.AssignedSlot.ID, slot.ID)
	}
	if resp.Session.Status != models.SessionActive {
		t.Fatalf("session status = %s, want Active", resp.Session.Status)
	}
	if resp.Session.BillingAmount != nil {
		t.Fatalf("hourly session should have no amount at entry, got %s", resp.Session.BillingAmount)
	}
	if got := resp.Message; got != "Vehicle 'KA01AB1234' entered. Assigned to slot R1." {
		t.Fatalf("entry message = %q", got)
	}

	stored, err := store.Slots().SlotByID(ctx, slot.ID)
	if err != nil {
		t.Fatalf("SlotByID: %v", err)
	}
	if stored.Status != models.SlotOccupied {
		t.Fatalf("slot status after entry = %s, want Occupied", stored.Status)
	}

	// 90 分钟后离场：50 + 30
	svc.now = func() time.Time { return entryTime.Add(90 * time.Minute) }
	exit, err := svc.VehicleExit(ctx, resp.Session.ID)
	if err != nil {
		t.Fatalf("VehicleExit: %v", err)
	}
	if exit.Session.Status != models.SessionCompleted {
		t.Fatalf("session status after exit = %s, want Completed", exit.Session.Status)
	}
	if exit.Session.BillingAmount == nil || *exit.Session.BillingAmount != models.Amount(8000) {
		t.Fatalf("billing amount = %v, want 80.00", exit.Session.BillingAmount)
	}
	if got := exit.Message; got != "Vehicle 'KA01AB1234' exited. Total amount: 80.00." {
		t.Fatalf("exit message = %q", got)
	}

	stored, _ = store.Slots().SlotByID(ctx, slot.ID)
	if stored.Status != models.SlotAvailable {
		t.Fatalf("slot status after exit = %s, want Available", stored.Status)
	}
}

func TestVehicleEntryDayPassPricedAtEntry(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	addSlot(t, store, "R1", models.SlotRegular, false)

	entryTime := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return entryTime }

	resp, err := svc.VehicleEntry(ctx, models.VehicleEntryRequest{
		NumberPlate: "KA02CD5678",
		VehicleType: models.VehicleCar,
		BillingType: models.BillingDayPass,
	})
	if err != nil {
		t.Fatalf("VehicleEntry: %v", err)
	}
	if resp.Session.BillingAmount == nil || *resp.Session.BillingAmount != models.Amount(20000) {
		t.Fatalf("day pass amount at entry = %v, want 200.00", resp.Session.BillingAmount)
	}

	// 停 10 小时，金额不变
	svc.now = func() time.Time { return entryTime.Add(10 * time.Hour) }
	exit, err := svc.VehicleExit(ctx, resp.Session.ID)
	if err != nil {
		t.Fatalf("VehicleExit: %v", err)
	}
	if *exit.Session.BillingAmount != models.Amount(20000) {
		t.Fatalf("day pass amount at exit = %s, want 200.00", exit.Session.BillingAmount)
	}
}

func TestVehicleEntryDuplicateActiveSession(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	addSlot(t, store, "R1", models.SlotRegular, false)
	addSlot(t, store, "R2", models.SlotRegular, false)

	req := models.VehicleEntryRequest{
		NumberPlate: "KA03EF9012",
		VehicleType: models.VehicleCar,
		BillingType: models.BillingHourly,
	}
	if _, err := svc.VehicleEntry(ctx, req); err != nil {
		t.Fatalf("first entry: %v", err)
	}

	_, err := svc.VehicleEntry(ctx, req)
	if KindOf(err) != KindDuplicateActiveSession {
		t.Fatalf("second entry error kind = %v, want DUPLICATE_ACTIVE_SESSION", KindOf(err))
	}

	// 第二次入场不应占用新的车位
	summary, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.OccupiedSlots != 1 {
		t.Fatalf("occupied slots = %d, want 1", summary.OccupiedSlots)
	}
}

func TestVehicleEntryManualSlot(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	addSlot(t, store, "R1", models.SlotRegular, false)
	target := addSlot(t, store, "R2", models.SlotRegular, false)

	resp, err := svc.VehicleEntry(ctx, models.VehicleEntryRequest{
		NumberPlate: "KA04GH3456",
		VehicleType: models.VehicleCar,
		BillingType: models.BillingHourly,
		SlotID:      &target.ID,
	})
	if err != nil {
		t.Fatalf("VehicleEntry: %v", err)
	}
	if resp.AssignedSlot.ID != target.ID {
		t.Fatalf("assigned slot = %d, want manual %d", resp.AssignedSlot.ID, target.ID)
	}
}

func TestVehicleEntryManualSlotFailuresMutateNothing(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	regular := addSlot(t, store, "R1", models.SlotRegular, false)
	bike := addSlot(t, store, "B1", models.SlotBike, false)

	cases := []struct {
		name   string
		slotID int64
		kind   ErrorKind
	}{
		{"missing slot", 999, KindSlotUnavailable},
		{"incompatible slot", bike.ID, KindSlotIncompatible},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slotID := tc.slotID
			_, err := svc.VehicleEntry(ctx, models.VehicleEntryRequest{
				NumberPlate: "KA05IJ7890",
				VehicleType: models.VehicleCar,
				BillingType: models.BillingHourly,
				SlotID:      &slotID,
			})
			if KindOf(err) != tc.kind {
				t.Fatalf("error kind = %v, want %s", KindOf(err), tc.kind)
			}

			// 失败的入场不应留下会话或车辆记录
			if active, _ := store.Sessions().ActiveByPlate(ctx, "KA05IJ7890"); active != nil {
				t.Fatal("failed entry left an active session")
			}
			if v, _ := store.Vehicles().FindByPlate(ctx, "KA05IJ7890"); v != nil {
				t.Fatal("failed entry left a vehicle record")
			}
			if slot, _ := store.Slots().SlotByID(ctx, regular.ID); slot.Status != models.SlotAvailable {
				t.Fatalf("slot status = %s, want Available", slot.Status)
			}
		})
	}
}

func TestVehicleEntryNoSlotAvailable(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	addSlot(t, store, "B1", models.SlotBike, false)

	_, err := svc.VehicleEntry(ctx, models.VehicleEntryRequest{
		NumberPlate: "KA06KL1234",
		VehicleType: models.VehicleCar,
		BillingType: models.BillingHourly,
	})
	if KindOf(err) != KindNoSlotAvailable {
		t.Fatalf("error kind = %v, want NO_SLOT_AVAILABLE", KindOf(err))
	}
}

func TestVehicleEntryReusesRegisteredVehicleType(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	addSlot(t, store, "B1", models.SlotBike, false)

	entry, err := svc.VehicleEntry(ctx, models.VehicleEntryRequest{
		NumberPlate: "KA07MN5678",
		VehicleType: models.VehicleBike,
		BillingType: models.BillingHourly,
	})
	if err != nil {
		t.Fatalf("first entry: %v", err)
	}
	if _, err := svc.VehicleExit(ctx, entry.Session.ID); err != nil {
		t.Fatalf("exit: %v", err)
	}

	// 再次入场时请求声明 Car，但登记类型 Bike 生效
	resp, err := svc.VehicleEntry(ctx, models.VehicleEntryRequest{
		NumberPlate: "KA07MN5678",
		VehicleType: models.VehicleCar,
		BillingType: models.BillingHourly,
	})
	if err != nil {
		t.Fatalf("second entry: %v", err)
	}
	if resp.AssignedSlot.SlotType != models.SlotBike {
		t.Fatalf("assigned slot type = %s, want Bike", resp.AssignedSlot.SlotType)
	}
}

func TestVehicleExitSessionNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.VehicleExit(context.Background(), uuid.New())
	if KindOf(err) != KindSessionNotFound {
		t.Fatalf("error kind = %v, want SESSION_NOT_FOUND", KindOf(err))
	}
}

func TestVehicleExitTwiceRejected(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	addSlot(t, store, "R1", models.SlotRegular, false)

	resp, err := svc.VehicleEntry(ctx, models.VehicleEntryRequest{
		NumberPlate: "KA08OP9012",
		VehicleType: models.VehicleCar,
		BillingType: models.BillingHourly,
	})
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if _, err := svc.VehicleExit(ctx, resp.Session.ID); err != nil {
		t.Fatalf("first exit: %v", err)
	}

	_, err = svc.VehicleExit(ctx, resp.Session.ID)
	if KindOf(err) != KindSessionNotFound {
		t.Fatalf("second exit error kind = %v, want SESSION_NOT_FOUND", KindOf(err))
	}
}

func TestVehicleExitInvalidTimeRange(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	addSlot(t, store, "R1", models.SlotRegular, false)

	entryTime := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return entryTime }
	resp, err := svc.VehicleEntry(ctx, models.VehicleEntryRequest{
		NumberPlate: "KA09QR3456",
		VehicleType: models.VehicleCar,
		BillingType: models.BillingHourly,
	})
	if err != nil {
		t.Fatalf("entry: %v", err)
	}

	svc.now = func() time.Time { return entryTime.Add(-time.Minute) }
	_, err = svc.VehicleExit(ctx, resp.Session.ID)
	if KindOf(err) != KindInvalidTimeRange {
		t.Fatalf("error kind = %v, want INVALID_TIME_RANGE", KindOf(err))
	}

	// 会话应保持活跃，车位保持占用
	if active, _ := store.Sessions().ActiveByPlate(ctx, "KA09QR3456"); active == nil {
		t.Fatal("session should remain active after billing failure")
	}
}

func TestVehicleExitSlotInMaintenanceStaysInMaintenance(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	slot := addSlot(t, store, "R1", models.SlotRegular, false)

	resp, err := svc.VehicleEntry(ctx, models.VehicleEntryRequest{
		NumberPlate: "KA10ST7890",
		VehicleType: models.VehicleCar,
		BillingType: models.BillingHourly,
	})
	if err != nil {
		t.Fatalf("entry: %v", err)
	}

	// 占用中转入维护
	if _, err := svc.UpdateSlotStatus(ctx, slot.ID, models.SlotMaintenance); err != nil {
		t.Fatalf("UpdateSlotStatus: %v", err)
	}

	if _, err := svc.VehicleExit(ctx, resp.Session.ID); err != nil {
		t.Fatalf("exit: %v", err)
	}

	stored, _ := store.Slots().SlotByID(ctx, slot.ID)
	if stored.Status != models.SlotMaintenance {
		t.Fatalf("slot status after exit = %s, want Maintenance", stored.Status)
	}
}

func TestCreateSlotDuplicateNumber(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateSlot(ctx, models.SlotCreateRequest{SlotNumber: "R1", SlotType: models.SlotRegular}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.CreateSlot(ctx, models.SlotCreateRequest{SlotNumber: "R1", SlotType: models.SlotCompact})
	if KindOf(err) != KindDuplicateSlotNumber {
		t.Fatalf("error kind = %v, want DUPLICATE_SLOT_NUMBER", KindOf(err))
	}
}

func TestUpdateSlotStatus(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	slot := addSlot(t, store, "R1", models.SlotRegular, false)

	updated, err := svc.UpdateSlotStatus(ctx, slot.ID, models.SlotMaintenance)
	if err != nil {
		t.Fatalf("to maintenance: %v", err)
	}
	if updated.Status != models.SlotMaintenance {
		t.Fatalf("status = %s, want Maintenance", updated.Status)
	}

	updated, err = svc.UpdateSlotStatus(ctx, slot.ID, models.SlotAvailable)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if updated.Status != models.SlotAvailable {
		t.Fatalf("status = %s, want Available", updated.Status)
	}

	// 同状态更新为无操作
	if _, err := svc.UpdateSlotStatus(ctx, slot.ID, models.SlotAvailable); err != nil {
		t.Fatalf("same-status update: %v", err)
	}

	_, err = svc.UpdateSlotStatus(ctx, 999, models.SlotMaintenance)
	if KindOf(err) != KindSlotNotFound {
		t.Fatalf("missing slot error kind = %v, want SLOT_NOT_FOUND", KindOf(err))
	}
}

func TestUpdateSlotStatusSlotInUse(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	slot := addSlot(t, store, "R1", models.SlotRegular, false)

	if _, err := svc.VehicleEntry(ctx, models.VehicleEntryRequest{
		NumberPlate: "KA11UV1234",
		VehicleType: models.VehicleCar,
		BillingType: models.BillingHourly,
	}); err != nil {
		t.Fatalf("entry: %v", err)
	}

	_, err := svc.UpdateSlotStatus(ctx, slot.ID, models.SlotAvailable)
	if KindOf(err) != KindSlotInUse {
		t.Fatalf("error kind = %v, want SLOT_IN_USE", KindOf(err))
	}

	stored, _ := store.Slots().SlotByID(ctx, slot.ID)
	if stored.Status != models.SlotOccupied {
		t.Fatalf("slot status = %s, want Occupied", stored.Status)
	}
}

func TestUpdateSlotStatusAvailableBlockedFromMaintenance(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	slot := addSlot(t, store, "R1", models.SlotRegular, false)

	resp, err := svc.VehicleEntry(ctx, models.VehicleEntryRequest{
		NumberPlate: "KA15CD9012",
		VehicleType: models.VehicleCar,
		BillingType: models.BillingHourly,
	})
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if _, err := svc.UpdateSlotStatus(ctx, slot.ID, models.SlotMaintenance); err != nil {
		t.Fatalf("to maintenance: %v", err)
	}

	// 会话仍活跃，从维护状态也不能绕回 Available
	_, err = svc.UpdateSlotStatus(ctx, slot.ID, models.SlotAvailable)
	if KindOf(err) != KindSlotInUse {
		t.Fatalf("error kind = %v, want SLOT_IN_USE", KindOf(err))
	}
	stored, _ := store.Slots().SlotByID(ctx, slot.ID)
	if stored.Status != models.SlotMaintenance {
		t.Fatalf("slot status = %s, want Maintenance", stored.Status)
	}

	// 会话结束后允许重新开放
	if _, err := svc.VehicleExit(ctx, resp.Session.ID); err != nil {
		t.Fatalf("exit: %v", err)
	}
	updated, err := svc.UpdateSlotStatus(ctx, slot.ID, models.SlotAvailable)
	if err != nil {
		t.Fatalf("reopen after exit: %v", err)
	}
	if updated.Status != models.SlotAvailable {
		t.Fatalf("slot status = %s, want Available", updated.Status)
	}
}

func TestVehicleEntryLosingSessionRaceReturnsDuplicate(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	slot := addSlot(t, store, "R1", models.SlotRegular, false)

	// 模拟竞争窗口：车位上已有活跃会话，但状态尚未落为 Occupied
	ghost := &models.ParkingSession{
		ID:                 uuid.New(),
		VehicleNumberPlate: "KA16EF3456",
		SlotID:             slot.ID,
		EntryTime:          time.Now(),
		Status:             models.SessionActive,
		BillingType:        models.BillingHourly,
	}
	if err := store.Sessions().Create(ctx, ghost); err != nil {
		t.Fatalf("create ghost session: %v", err)
	}

	_, err := svc.VehicleEntry(ctx, models.VehicleEntryRequest{
		NumberPlate: "KA17GH7890",
		VehicleType: models.VehicleCar,
		BillingType: models.BillingHourly,
	})
	if KindOf(err) != KindDuplicateActiveSession {
		t.Fatalf("error kind = %v, want DUPLICATE_ACTIVE_SESSION", KindOf(err))
	}

	// 竞争失败的入场整体回滚，车位状态不变
	stored, _ := store.Slots().SlotByID(ctx, slot.ID)
	if stored.Status != models.SlotAvailable {
		t.Fatalf("slot status = %s, want Available", stored.Status)
	}
}

func TestSummary(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	addSlot(t, store, "R1", models.SlotRegular, false)
	addSlot(t, store, "R2", models.SlotRegular, false)
	m := addSlot(t, store, "R3", models.SlotRegular, false)

	if _, err := svc.UpdateSlotStatus(ctx, m.ID, models.SlotMaintenance); err != nil {
		t.Fatalf("UpdateSlotStatus: %v", err)
	}
	if _, err := svc.VehicleEntry(ctx, models.VehicleEntryRequest{
		NumberPlate: "KA12WX5678",
		VehicleType: models.VehicleCar,
		BillingType: models.BillingHourly,
	}); err != nil {
		t.Fatalf("entry: %v", err)
	}

	summary, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	want := models.DashboardSummary{TotalSlots: 3, AvailableSlots: 1, OccupiedSlots: 1, MaintenanceSlots: 1}
	if *summary != want {
		t.Fatalf("summary = %+v, want %+v", *summary, want)
	}
}

func TestListSessionsFilters(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	addSlot(t, store, "R1", models.SlotRegular, false)
	addSlot(t, store, "R2", models.SlotRegular, false)

	first, err := svc.VehicleEntry(ctx, models.VehicleEntryRequest{
		NumberPlate: "KA13YZ9012",
		VehicleType: models.VehicleCar,
		BillingType: models.BillingHourly,
	})
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if _, err := svc.VehicleEntry(ctx, models.VehicleEntryRequest{
		NumberPlate: "MH14AB3456",
		VehicleType: models.VehicleCar,
		BillingType: models.BillingHourly,
	}); err != nil {
		t.Fatalf("entry: %v", err)
	}
	if _, err := svc.VehicleExit(ctx, first.Session.ID); err != nil {
		t.Fatalf("exit: %v", err)
	}

	completed := models.SessionCompleted
	sessions, err := svc.ListSessions(ctx, repository.SessionFilter{Status: &completed})
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].VehicleNumberPlate != "KA13YZ9012" {
		t.Fatalf("completed sessions = %+v, want one for KA13YZ9012", sessions)
	}

	// 车牌子串匹配不区分大小写
	sessions, err = svc.ListSessions(ctx, repository.SessionFilter{NumberPlate: "mh14"})
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].VehicleNumberPlate != "MH14AB3456" {
		t.Fatalf("plate filtered sessions = %+v, want one for MH14AB3456", sessions)
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	plates := []string{"KA18IJ1234", "KA19KL5678", "KA20MN9012"}
	for i, plate := range plates {
		number := fmt.Sprintf("R%d", i+1)
		if _, err := svc.CreateSlot(ctx, models.SlotCreateRequest{SlotNumber: number, SlotType: models.SlotRegular}); err != nil {
			t.Fatalf("create slot %s: %v", number, err)
		}
		entryTime := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return entryTime }
		if _, err := svc.VehicleEntry(ctx, models.VehicleEntryRequest{
			NumberPlate: plate,
			VehicleType: models.VehicleCar,
			BillingType: models.BillingHourly,
		}); err != nil {
			t.Fatalf("entry %s: %v", plate, err)
		}
	}

	sessions, err := svc.ListSessions(ctx, repository.SessionFilter{})
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != len(plates) {
		t.Fatalf("sessions = %d, want %d", len(sessions), len(plates))
	}
	for i, want := range []string{"KA20MN9012", "KA19KL5678", "KA18IJ1234"} {
		if sessions[i].VehicleNumberPlate != want {
			t.Fatalf("sessions[%d] = %s, want %s", i, sessions[i].VehicleNumberPlate, want)
		}
	}
}

func TestSeedDefaultSlots(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	if err := svc.SeedDefaultSlots(ctx); err != nil {
		t.Fatalf("SeedDefaultSlots: %v", err)
	}
	count, _ := store.Slots().Count(ctx)
	if count != len(defaultSlotLayout) {
		t.Fatalf("slot count = %d, want %d", count, len(defaultSlotLayout))
	}

	// 二次调用不应重复填充
	if err := svc.SeedDefaultSlots(ctx); err != nil {
		t.Fatalf("second SeedDefaultSlots: %v", err)
	}
	count, _ = store.Slots().Count(ctx)
	if count != len(defaultSlotLayout) {
		t.Fatalf("slot count after reseed = %d, want %d", count, len(defaultSlotLayout))
	}

	// EV 车位带充电桩
	evType := models.SlotEV
	evSlots, _ := store.Slots().List(ctx, repository.SlotFilter{SlotType: &evType})
	if len(evSlots) != 3 {
		t.Fatalf("EV slots = %d, want 3", len(evSlots))
	}
	for _, slot := range evSlots {
		if !slot.HasCharger {
			t.Fatalf("EV slot %s missing charger", slot.SlotNumber)
		}
	}
}
