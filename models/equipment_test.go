package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestEquipmentAssign(t *testing.T) {
	workID := uuid.New()

	t.Run("available item can be assigned", func(t *testing.T) {
		item := Equipment{ID: uuid.New(), Status: EquipmentAvailable}
		if err := item.Assign(workID, "Ravi"); err != nil {
			t.Fatalf("Assign() error: %v", err)
		}
		if item.Status != EquipmentAssigned {
			t.Errorf("Status = %q, want %q", item.Status, EquipmentAssigned)
		}
		if item.WorkID == nil || *item.WorkID != workID {
			t.Error("WorkID not set")
		}
		if item.AssignedTo == nil || *item.AssignedTo != "Ravi" {
			t.Error("AssignedTo not set")
		}
	})

	t.Run("assigned item rejects reassignment", func(t *testing.T) {
		item := Equipment{ID: uuid.New(), Status: EquipmentAvailable}
		if err := item.Assign(workID, "Ravi"); err != nil {
			t.Fatalf("first Assign() error: %v", err)
		}
		if err := item.Assign(uuid.New(), "Sita"); err == nil {
			t.Error("second Assign() succeeded, want error")
		}
		if *item.AssignedTo != "Ravi" {
			t.Errorf("AssignedTo changed to %q on rejected reassignment", *item.AssignedTo)
		}
	})

	t.Run("nil work id rejected", func(t *testing.T) {
		item := Equipment{ID: uuid.New(), Status: EquipmentAvailable}
		if err := item.Assign(uuid.Nil, "Ravi"); err == nil {
			t.Error("Assign(uuid.Nil, ...) succeeded, want error")
		}
		if item.Status != EquipmentAvailable {
			t.Errorf("rejected assignment changed status to %q", item.Status)
		}
	})

	t.Run("empty assignee rejected", func(t *testing.T) {
		item := Equipment{ID: uuid.New(), Status: EquipmentAvailable}
		if err := item.Assign(workID, ""); err == nil {
			t.Error(`Assign(workID, "") succeeded, want error`)
		}
	})
}

func TestEquipmentRelease(t *testing.T) {
	workID := uuid.New()

	t.Run("assigned item can be released", func(t *testing.T) {
		item := Equipment{ID: uuid.New(), Status: EquipmentAvailable}
		if err := item.Assign(workID, "Ravi"); err != nil {
			t.Fatalf("Assign() error: %v", err)
		}
		if err := item.Release(); err != nil {
			t.Fatalf("Release() error: %v", err)
		}
		if item.Status != EquipmentAvailable {
			t.Errorf("Status = %q, want %q", item.Status, EquipmentAvailable)
		}
		if item.WorkID != nil || item.AssignedTo != nil {
			t.Error("release left a stale work link")
		}
	})

	t.Run("available item rejects release", func(t *testing.T) {
		item := Equipment{ID: uuid.New(), Status: EquipmentAvailable}
		if err := item.Release(); err == nil {
			t.Error("Release() on available item succeeded, want error")
		}
	})
}
