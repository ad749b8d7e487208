package message

// Action is the task or activity a command asks a consumer to perform.
// The vocabulary below is the standard set; unknown verbs deserialize
// without error and round-trip unchanged so newer producers can talk to
// older consumers. Use Valid to test membership.
type Action string

const (
	// ActionScan is a systematic examination of some aspect of the entity
	// or its environment.
	ActionScan Action = "scan"
	// ActionLocate finds an object physically, logically, functionally, or
	// by organization.
	ActionLocate Action = "locate"
	// ActionQuery initiates a request for information.
	ActionQuery Action = "query"
	// ActionDeny prevents a certain event or action from completion.
	ActionDeny Action = "deny"
	// ActionContain isolates a file, process, or entity so that it cannot
	// modify or access assets or processes.
	ActionContain Action = "contain"
	// ActionAllow permits access to or execution of a target.
	ActionAllow Action = "allow"
	// ActionStart initiates a process, application, system, or activity.
	ActionStart Action = "start"
	// ActionStop halts a system or ends an activity.
	ActionStop Action = "stop"
	// ActionRestart stops then restarts a system or activity.
	ActionRestart Action = "restart"
	// ActionCancel invalidates a previously issued command.
	ActionCancel Action = "cancel"
	// ActionSet changes a value, configuration, or state.
	ActionSet Action = "set"
	// ActionUpdate instructs a component to retrieve and process a software
	// update, reconfiguration, or other update.
	ActionUpdate Action = "update"
	// ActionRedirect changes the flow of traffic to a particular
	// destination.
	ActionRedirect Action = "redirect"
	// ActionCreate adds a new entity of a known type.
	ActionCreate Action = "create"
	// ActionDelete removes an entity.
	ActionDelete Action = "delete"
	// ActionDetonate executes and observes the behavior of a target in an
	// isolated environment.
	ActionDetonate Action = "detonate"
	// ActionRestore returns a system to a previously known state.
	ActionRestore Action = "restore"
	// ActionCopy duplicates an object, file, data flow, or artifact.
	ActionCopy Action = "copy"
	// ActionInvestigate tasks the recipient to aggregate and report
	// information as it pertains to an event or incident.
	ActionInvestigate Action = "investigate"
	// ActionRemediate tasks the recipient to eliminate a vulnerability or
	// attack point.
	ActionRemediate Action = "remediate"
)

var standardActions = map[Action]struct{}{
	ActionScan: {}, ActionLocate: {}, ActionQuery: {}, ActionDeny: {},
	ActionContain: {}, ActionAllow: {}, ActionStart: {}, ActionStop: {},
	ActionRestart: {}, ActionCancel: {}, ActionSet: {}, ActionUpdate: {},
	ActionRedirect: {}, ActionCreate: {}, ActionDelete: {}, ActionDetonate: {},
	ActionRestore: {}, ActionCopy: {}, ActionInvestigate: {}, ActionRemediate: {},
}

// Valid reports whether the action is part of the standard vocabulary.
func (a Action) Valid() bool {
	_, ok := standardActions[a]
	return ok
}

// String returns the lowercase wire form.
func (a Action) String() string {
	return string(a)
}
