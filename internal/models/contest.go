package models

import "time"

// Contest represents a contest hosted on the platform, together with the
// submissions entered into it. CreatorEmail is set from the verified principal
// at creation and is never part of any update payload.
type Contest struct {
	ID              string       `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CreatorEmail    string       `json:"creator_email" gorm:"index;type:varchar(255)"`
	Name            string       `json:"name" gorm:"type:varchar(150)" validate:"required,min=3,max=150"`
	Image           string       `json:"image" gorm:"type:varchar(512)" validate:"omitempty,url"`
	Description     string       `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	TaskInstruction string       `json:"taskInstruction" gorm:"type:text" validate:"omitempty,max=2000"`
	ContestType     string       `json:"contestType" gorm:"type:varchar(50)" validate:"omitempty,max=50"`
	PrizeMoney      float64      `json:"prizeMoney" validate:"gte=0"`
	Deadline        time.Time    `json:"deadline"`
	CreatedAt       time.Time    `json:"created_at"`
	Submissions     []Submission `json:"submissionsTask" gorm:"foreignKey:ContestID;constraint:OnDelete:CASCADE"`
}

// ContestUpdate is the set of contest fields a creator may change after
// creation. Pointer fields distinguish "not supplied" from a zero value;
// creator_email and created_at are deliberately absent.
type ContestUpdate struct {
	Name            *string    `json:"name" validate:"omitempty,min=3,max=150"`
	Image           *string    `json:"image" validate:"omitempty,url"`
	Description     *string    `json:"description" validate:"omitempty,max=2000"`
	TaskInstruction *string    `json:"taskInstruction" validate:"omitempty,max=2000"`
	ContestType     *string    `json:"contestType" validate:"omitempty,max=50"`
	PrizeMoney      *float64   `json:"prizeMoney" validate:"omitempty,gte=0"`
	Deadline        *time.Time `json:"deadline"`
}

// Fields returns the supplied update fields as a column map for the storage
// layer. An empty map means there is nothing to change.
func (u ContestUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Image != nil {
		fields["image"] = *u.Image
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.TaskInstruction != nil {
		fields["task_instruction"] = *u.TaskInstruction
	}
	if u.ContestType != nil {
		fields["contest_type"] = *u.ContestType
	}
	if u.PrizeMoney != nil {
		fields["prize_money"] = *u.PrizeMoney
	}
	if u.Deadline != nil {
		fields["deadline"] = *u.Deadline
	}
	return fields
}

// Submission is a participant's entry in a contest. The composite unique
// index keeps one submission per participant per contest, so marking a winner
// by (contest, participant email) touches at most one row.
type Submission struct {
	ID               string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ContestID        string    `json:"contestId" gorm:"uniqueIndex:uniq_contest_participant;type:varchar(36)"`
	ParticipantEmail string    `json:"participantEmail" gorm:"uniqueIndex:uniq_contest_participant;type:varchar(255)" validate:"omitempty,email"`
	ParticipantName  string    `json:"participantName" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	SubmittedLink    string    `json:"submittedLink" gorm:"type:varchar(512)" validate:"omitempty,url"`
	IsWinner         bool      `json:"isWinner" gorm:"not null;default:false"`
	CreatedAt        time.Time `json:"createdAt"`
}
