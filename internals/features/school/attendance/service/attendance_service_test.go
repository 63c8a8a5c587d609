package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	academicsModel "colegio_backend/internals/features/school/academics/model"
	"colegio_backend/internals/features/school/attendance/model"
	inventoryModel "colegio_backend/internals/features/school/inventory/model"
	inventoryService "colegio_backend/internals/features/school/inventory/service"
	partnersModel "colegio_backend/internals/features/school/partners/model"
)

func student(name string) partnersModel.PartnerModel {
	return partnersModel.PartnerModel{
		PartnerID:   uuid.New(),
		PartnerName: name,
		PartnerRole: partnersModel.RoleStudent,
	}
}

func TestBuildAttendanceLines(t *testing.T) {
	attID := uuid.New()
	a, b := student("Ana"), student("Berta")

	lines := BuildAttendanceLines(attID, []partnersModel.PartnerModel{a, b})
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, l := range lines {
		if l.AttendanceLineAttended {
			t.Error("new lines must start with attended=false")
		}
		if l.AttendanceLineAttendanceID != attID {
			t.Error("line not bound to attendance")
		}
	}

	if got := BuildAttendanceLines(attID, nil); len(got) != 0 {
		t.Errorf("zero students should give zero lines, got %d", len(got))
	}
}

// El reemplazo es total: pasar de {A,B} a {B,C} produce exactamente
// líneas para B y C, y el flag de presencia previo de B se pierde.
func TestBuildAttendanceLinesRosterChangeIsWholesale(t *testing.T) {
	attID := uuid.New()
	a, b, c := student("Ana"), student("Berta"), student("Carla")

	first := BuildAttendanceLines(attID, []partnersModel.PartnerModel{a, b})
	first[1].AttendanceLineAttended = true // B presente

	second := BuildAttendanceLines(attID, []partnersModel.PartnerModel{b, c})
	if len(second) != 2 {
		t.Fatalf("got %d lines, want 2", len(second))
	}
	wantStudents := map[uuid.UUID]bool{b.PartnerID: true, c.PartnerID: true}
	for _, l := range second {
		if !wantStudents[l.AttendanceLineStudentID] {
			t.Errorf("unexpected student %s in regenerated lines", l.AttendanceLineStudentID)
		}
		if l.AttendanceLineAttended {
			t.Error("regeneration must reset attended flags")
		}
	}
}

func TestBuildMaterialLinesSnapshot(t *testing.T) {
	attID := uuid.New()
	boxLines := []inventoryModel.BoxLineModel{
		{BoxLineID: uuid.New(), BoxLineProductName: "Motor", BoxLineExpectedQuantity: 20, BoxLineRealQuantity: 18},
	}

	lines := BuildMaterialLines(attID, boxLines)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	l := lines[0]
	if l.MaterialLineOriginalExpected != 20 || l.MaterialLineOriginalReal != 18 {
		t.Errorf("snapshot = %d/%d, want 20/18", l.MaterialLineOriginalExpected, l.MaterialLineOriginalReal)
	}
	if l.CurrentQuantity() != 18 || l.TotalDifference() != 0 {
		t.Errorf("fresh line current/diff = %d/%d", l.CurrentQuantity(), l.TotalDifference())
	}

	l.MaterialLineLost = 2
	l.MaterialLineDamaged = 1
	if l.CurrentQuantity() != 15 {
		t.Errorf("CurrentQuantity() = %d, want 15", l.CurrentQuantity())
	}
	if l.TotalDifference() != 3 {
		t.Errorf("TotalDifference() = %d, want 3", l.TotalDifference())
	}
}

func TestBuildCloseMovements(t *testing.T) {
	attID := uuid.New()
	boxID := uuid.New()
	lineA := uuid.New()
	lineB := uuid.New()

	lines := []model.AttendanceMaterialLineModel{
		{MaterialLineBoxLineID: lineA, MaterialLineOriginalReal: 18, MaterialLineLost: 2, MaterialLineDamaged: 1},
		{MaterialLineBoxLineID: lineB, MaterialLineOriginalReal: 10}, // intacta, sin movimientos
	}

	got := BuildCloseMovements(attID, boxID, lines)
	if len(got) != 2 {
		t.Fatalf("got %d movements, want 2 (one per nonzero category)", len(got))
	}

	byType := map[string]inventoryModel.MaterialMovementModel{}
	for _, m := range got {
		byType[m.MovementType] = m
		if m.MovementAttendanceID == nil || *m.MovementAttendanceID != attID {
			t.Error("movement must reference its attendance")
		}
		if m.MovementBoxLineID != lineA {
			t.Error("untouched line must not produce movements")
		}
	}
	if byType[inventoryModel.MovementLoss].MovementQty != -2 {
		t.Errorf("loss qty = %d, want -2", byType[inventoryModel.MovementLoss].MovementQty)
	}
	if byType[inventoryModel.MovementDamage].MovementQty != -1 {
		t.Errorf("damage qty = %d, want -1", byType[inventoryModel.MovementDamage].MovementQty)
	}
}

// Cerrar y reabrir sin movimientos intermedios devuelve la suma del
// libro a su valor previo al cierre.
func TestCloseReopenRoundTrip(t *testing.T) {
	attID := uuid.New()
	boxID := uuid.New()
	boxLineID := uuid.New()

	ledger := []inventoryModel.MaterialMovementModel{
		{MovementBoxLineID: boxLineID, MovementQty: 18, MovementType: inventoryModel.MovementIncrement},
	}
	before := inventoryService.SumMovements(ledger, boxLineID)

	lines := []model.AttendanceMaterialLineModel{
		{MaterialLineBoxLineID: boxLineID, MaterialLineOriginalReal: 18, MaterialLineLost: 3, MaterialLineDamaged: 2},
	}
	posted := BuildCloseMovements(attID, boxID, lines)
	ledger = append(ledger, posted...)

	if got := inventoryService.SumMovements(ledger, boxLineID); got != 13 {
		t.Fatalf("after close sum = %d, want 13", got)
	}

	ledger = append(ledger, BuildReversals(posted)...)
	if got := inventoryService.SumMovements(ledger, boxLineID); got != before {
		t.Errorf("after reopen sum = %d, want %d", got, before)
	}
}

// Dos ciclos completos de cierre/reapertura: la segunda reapertura
// solo compensa los movimientos del segundo cierre. Sin el filtro de
// reversiones previas la suma se inflaría (18 → 13 → 18 → 13 → 23).
func TestCloseReopenTwiceKeepsLedgerStable(t *testing.T) {
	attID := uuid.New()
	boxID := uuid.New()
	boxLineID := uuid.New()

	ledger := []inventoryModel.MaterialMovementModel{
		{MovementID: uuid.New(), MovementBoxLineID: boxLineID, MovementQty: 18, MovementType: inventoryModel.MovementIncrement},
	}
	lines := []model.AttendanceMaterialLineModel{
		{MaterialLineBoxLineID: boxLineID, MaterialLineOriginalReal: 18, MaterialLineLost: 5},
	}

	var posted, reversals []inventoryModel.MaterialMovementModel
	close := func() {
		batch := BuildCloseMovements(attID, boxID, lines)
		for i := range batch {
			batch[i].MovementID = uuid.New()
		}
		posted = append(posted, batch...)
		ledger = append(ledger, batch...)
	}
	reopen := func() int {
		batch := BuildReversals(UnreversedPostings(posted, reversals))
		for i := range batch {
			batch[i].MovementID = uuid.New()
		}
		reversals = append(reversals, batch...)
		ledger = append(ledger, batch...)
		return len(batch)
	}
	sum := func() int { return inventoryService.SumMovements(ledger, boxLineID) }

	close()
	if got := sum(); got != 13 {
		t.Fatalf("after first close sum = %d, want 13", got)
	}
	if n := reopen(); n != 1 {
		t.Fatalf("first reopen posted %d reversals, want 1", n)
	}
	if got := sum(); got != 18 {
		t.Fatalf("after first reopen sum = %d, want 18", got)
	}

	close()
	if got := sum(); got != 13 {
		t.Fatalf("after second close sum = %d, want 13", got)
	}
	if n := reopen(); n != 1 {
		t.Errorf("second reopen posted %d reversals, want only the second close's", n)
	}
	if got := sum(); got != 18 {
		t.Errorf("after second reopen sum = %d, want 18", got)
	}
}

func TestUnreversedPostings(t *testing.T) {
	first := inventoryModel.MaterialMovementModel{MovementID: uuid.New(), MovementType: inventoryModel.MovementLoss}
	second := inventoryModel.MaterialMovementModel{MovementID: uuid.New(), MovementType: inventoryModel.MovementLoss}
	firstID := first.MovementID
	reversal := inventoryModel.MaterialMovementModel{
		MovementID:           uuid.New(),
		MovementType:         inventoryModel.MovementReversal,
		MovementReversalOfID: &firstID,
	}

	got := UnreversedPostings(
		[]inventoryModel.MaterialMovementModel{first, second},
		[]inventoryModel.MaterialMovementModel{reversal})
	if len(got) != 1 || got[0].MovementID != second.MovementID {
		t.Errorf("expected only the unreversed movement, got %+v", got)
	}
}

func TestWeekdayCode(t *testing.T) {
	tests := []struct {
		day  time.Time
		want int
	}{
		{time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC), 0},  // lunes
		{time.Date(2024, 9, 4, 0, 0, 0, 0, time.UTC), 2},  // miércoles
		{time.Date(2024, 9, 7, 0, 0, 0, 0, time.UTC), 5},  // sábado
		{time.Date(2024, 9, 8, 0, 0, 0, 0, time.UTC), 6},  // domingo
	}
	for _, tt := range tests {
		if got := WeekdayCode(tt.day); got != tt.want {
			t.Errorf("WeekdayCode(%s) = %d, want %d", tt.day.Format("2006-01-02"), got, tt.want)
		}
	}
}

// El generador diario es idempotente: la segunda pasada del mismo día
// no encuentra líneas pendientes.
func TestPendingCourseLinesSecondPassCreatesNothing(t *testing.T) {
	lineA := academicsModel.CourseLineModel{CourseLineID: uuid.New()}
	lineB := academicsModel.CourseLineModel{CourseLineID: uuid.New()}
	all := []academicsModel.CourseLineModel{lineA, lineB}

	existing := map[uuid.UUID]bool{}
	has := func(id uuid.UUID) (bool, error) { return existing[id], nil }

	first, err := PendingCourseLines(all, has)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("first pass pending = %d, want 2", len(first))
	}
	for _, l := range first {
		existing[l.CourseLineID] = true
	}

	second, err := PendingCourseLines(all, has)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second pass pending = %d, want 0", len(second))
	}
}

func TestPendingCourseLinesAbortsOnCheckError(t *testing.T) {
	boom := errors.New("sin conexión")
	lines := []academicsModel.CourseLineModel{{CourseLineID: uuid.New()}}

	_, err := PendingCourseLines(lines, func(uuid.UUID) (bool, error) { return false, boom })
	if err != boom {
		t.Errorf("expected the check error to abort the batch, got %v", err)
	}
}
