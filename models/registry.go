package models

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Company{},
		&Post{},
		&Comment{},
		&Vote{},
		&CommentVote{},
		&Event{},
		&EventRegistration{},
		&Bounty{},
		&BountyAssignment{},
		&BoardBounty{},
		&Application{},
	}
}
