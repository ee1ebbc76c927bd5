package main

// OwnershipRegistry decides who may read or change a list or task.
//
// In strict mode every operation is gated on the parent list belonging to the
// acting user. Legacy mode keeps the old permissive behavior: anyone signed in
// may view or delete any list and add tasks to it; only task edit and delete
// compare against the task's stored owner.
type OwnershipRegistry struct {
	mode OwnershipMode
}

func NewOwnershipRegistry(mode OwnershipMode) OwnershipRegistry {
	if mode != OwnershipLegacy {
		mode = OwnershipStrict
	}
	return OwnershipRegistry{mode: mode}
}

func (o OwnershipRegistry) Strict() bool { return o.mode == OwnershipStrict }

func (o OwnershipRegistry) CanViewList(user uint, l List) bool {
	return !o.Strict() || l.OwnerUserID == user
}

func (o OwnershipRegistry) CanMutateList(user uint, l List) bool {
	return !o.Strict() || l.OwnerUserID == user
}

// CanCreateTask reports whether user may add a task to l.
func (o OwnershipRegistry) CanCreateTask(user uint, l List) bool {
	return o.CanMutateList(user, l)
}

// CanMutateTask compares against the task's own owner copy. Strict callers also
// check the parent list with CanMutateList.
func (o OwnershipRegistry) CanMutateTask(user uint, t Task) bool {
	return t.OwnerUserID == user
}
