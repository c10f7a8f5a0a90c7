// internal/survey/dto.go

package survey

// SubmitRequest is the lifestyle survey payload. Categorical fields and 1-5
// scales are both accepted; a submission may fill either path.
type SubmitRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=80"`

	SleepSchedule *string `json:"sleep_schedule,omitempty" validate:"omitempty,oneof=early-bird neither night-owl"`
	SleepLevel    *int    `json:"sleep_level,omitempty" validate:"omitempty,gte=1,lte=5"`

	Cleanliness     *int    `json:"cleanliness,omitempty" validate:"omitempty,gte=1,lte=5"`
	CleanlinessPref *string `json:"cleanliness_pref,omitempty" validate:"omitempty,oneof=very-clean slightly-clean neither slightly-dirty very-dirty"`

	NoiseLevel     *int `json:"noise_level,omitempty" validate:"omitempty,gte=1,lte=5"`
	NoiseTolerance *int `json:"noise_tolerance,omitempty" validate:"omitempty,gte=0,lte=100"`

	StudyHabits *string `json:"study_habits,omitempty" validate:"omitempty,oneof=quiet-study background-noise flexible social-study"`

	SocialLevel    *int    `json:"social_level,omitempty" validate:"omitempty,gte=1,lte=5"`
	SocialPref     *string `json:"social_pref,omitempty" validate:"omitempty,oneof=private somewhat-social mixed very-social"`
	GuestFrequency *int    `json:"guest_frequency,omitempty" validate:"omitempty,gte=1,lte=5"`
	GuestPolicy    *string `json:"guest_policy,omitempty" validate:"omitempty,oneof=no-guests rare-guests occasional-guests frequent-guests"`

	Temperature *int `json:"temperature,omitempty" validate:"omitempty,gte=15,lte=30"`

	Smoking             bool     `json:"smoking"`
	Drinking            string   `json:"drinking" validate:"omitempty,oneof=never socially regularly"`
	HasPets             bool     `json:"has_pets"`
	PetTypes            []string `json:"pet_types" validate:"max=10,dive,min=1,max=40"`
	DietaryRestrictions []string `json:"dietary_restrictions" validate:"max=10,dive,min=1,max=60"`
	Interests           []string `json:"interests" validate:"max=20,dive,min=1,max=60"`
	WorkSchedule        string   `json:"work_schedule" validate:"omitempty,oneof=day night flexible"`
}

type SubmitResponse struct {
	Message    string `json:"message"`
	NewProfile bool   `json:"new_profile"`
}
