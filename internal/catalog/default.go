package catalog

import "github.com/claude/repcycle/internal/models"

// defaultTemplate is the built-in 30-minute full-body interval workout.
func defaultTemplate() models.WorkoutTemplate {
	return models.WorkoutTemplate{
		ID:              DefaultTemplateID,
		Name:            "30 Min Full Body",
		DurationMinutes: 30,
		Sections: []models.Section{
			{
				Title: "Warm Up",
				Exercises: []models.Exercise{
					{Name: "Neck pulses", Duration: "30s"},
					{Name: "Neck rotations", Duration: "30s"},
					{Name: "Shoulder rotations", Duration: "30s"},
					{Name: "Arnold rotations", Duration: "30s"},
					{Name: "Chest expansion (Lateral)", Duration: "30s"},
					{Name: "Chest expansion (Front)", Duration: "30s"},
					{Name: "Hip rotations", Duration: "30s"},
					{Name: "Side to side arm extensions", Duration: "30s"},
					{Name: "Lower back & Hamstrings", Duration: "30s"},
					{Name: "Side lunge pulse", Duration: "30s"},
					{Name: "Knee to chest", Duration: "30s"},
					{Name: "Squat rotations reach the sky", Duration: "30s"},
				},
			},
			{
				Title: "Main Workout",
				Exercises: []models.Exercise{
					{Name: "3 x Push up 3 x Climbers", Duration: "40s", Rest: "15s"},
					{Name: "Pike shoulder tap", Duration: "40s", Rest: "15s"},
					{Name: "REG push up into plank rotation", Duration: "40s", Rest: "15s"},
					{Name: "Reverse snow angels", Duration: "40s", Rest: "15s"},
					{Name: "In and Out push up", Duration: "40s", Rest: "15s"},
					{Name: "Low plank to high plank", Duration: "40s", Rest: "40s"},
					{Name: "Reverse lunge reach the sky", Duration: "40s", Rest: "15s"},
					{Name: "Pulse squats", Duration: "40s", Rest: "15s"},
					{Name: "Side to side lunge", Duration: "40s", Rest: "15s"},
					{Name: "Glute bridge", Duration: "40s", Rest: "15s"},
					{Name: "Squat walk outs", Duration: "40s", Rest: "15s"},
					{Name: "In and Out squat", Duration: "40s", Rest: "40s"},
					{Name: "Long arm crunches", Duration: "40s", Rest: "15s"},
					{Name: "Plank knee rotation", Duration: "40s", Rest: "15s"},
					{Name: "Heel touches", Duration: "40s", Rest: "15s"},
					{Name: "Oblique crunch (left)", Duration: "40s", Rest: "15s"},
					{Name: "Oblique crunch (right)", Duration: "40s", Rest: "15s"},
					{Name: "Reverse crunch", Duration: "40s", Rest: "40s"},
					{Name: "Burpees", Duration: "40s", Rest: "15s"},
					{Name: "Jumping Jacks", Duration: "40s", Rest: "15s"},
					{Name: "High knees", Duration: "40s", Rest: "15s"},
					{Name: "Criss cross oblique crunch", Duration: "40s", Rest: "15s"},
					{Name: "Butt kicks", Duration: "40s", Rest: "15s"},
					{Name: "MTN climbers", Duration: "40s", Rest: "15s"},
				},
			},
		},
	}
}
