package models

// Ключи маршрутизации доменных событий.
const (
	EventPlanGenerated = "plan.generated"
	EventPlanDeleted   = "plan.deleted"
)

// PlanGeneratedEvent публикуется после сохранения сгенерированного плана.
type PlanGeneratedEvent struct {
	PlanID         int    `json:"plan_id"`
	UserUID        string `json:"user_uid"`
	StartDate      Date   `json:"start_date"`
	EndDate        Date   `json:"end_date"`
	RequestedSlots int    `json:"requested_slots"`
	FilledSlots    int    `json:"filled_slots"`
}

// PlanDeletedEvent публикуется после удаления плана.
type PlanDeletedEvent struct {
	PlanID  int    `json:"plan_id"`
	UserUID string `json:"user_uid"`
}
