// Package capability provides ordered capability sets bound to a single owner.
//
// A capability is a small object that extends its owner's behavior or
// metadata without inheritance. Each owner holds exactly one Set and the set
// decides, through the capability itself, whether an attachment is accepted.
//
// Lifecycle:
//   - Add: CanAttach gates the attachment, OnAttached fires after append
//   - Remove: OnDetached fires before the entry leaves the list
//   - Clear: every entry is detached in list order, then the list is emptied
//
// Rejected attachments are silent. A refusal from CanAttach is filtering,
// not failure, so nothing is logged and no hook runs.
//
// Example Usage:
//
//	set := capability.NewSet(record)
//	set.Add(&Singleton{})
//	if capability.Has[*Singleton](set) {
//		// ...
//	}
package capability
