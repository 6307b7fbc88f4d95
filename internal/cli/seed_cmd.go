package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/access"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/domain"
)

type sampleWorkout struct {
	title      string
	kind       domain.WorkoutType
	duration   float64
	calories   float64
	difficulty string
	notes      string
	date       string
}

var sampleWorkouts = []sampleWorkout{
	{"Morning Run", domain.WorkoutTypeCardio, 30, 300, "Medium", "Felt good", "2023-10-01"},
	{"Evening Yoga", domain.WorkoutTypeYoga, 45, 150, "Easy", "Relaxing", "2023-10-02"},
	{"Heavy Lifting", domain.WorkoutTypeStrength, 60, 500, "Hard", "Chest day", "2023-10-03"},
	{"HIIT Blast", domain.WorkoutTypeCardio, 20, 250, "Hard", "Intense", "2023-10-04"},
	{"Pilates", domain.WorkoutTypeYoga, 50, 200, "Medium", "Core work", "2023-10-05"},
	{"Cycling", domain.WorkoutTypeCardio, 45, 400, "Medium", "Indoor bike", "2023-10-06"},
	{"Deadlifts", domain.WorkoutTypeStrength, 40, 350, "Hard", "Back focus", "2023-10-07"},
	{"Meditation", domain.WorkoutTypeYoga, 15, 0, "Easy", "Mindfulness", "2023-10-08"},
	{"Swimming", domain.WorkoutTypeCardio, 60, 600, "Hard", "Laps", "2023-10-09"},
	{"Jump Rope", domain.WorkoutTypeCardio, 15, 200, "Medium", "Warmup", "2023-10-10"},
	{"Full Body", domain.WorkoutTypeStrength, 55, 450, "Hard", "Dumbbells", "2023-10-11"},
	{"Stretching", domain.WorkoutTypeYoga, 20, 50, "Easy", "Recovery", "2023-10-12"},
	{"Zumba", domain.WorkoutTypeCardio, 50, 500, "Medium", "Fun", "2023-10-13"},
	{"Squats", domain.WorkoutTypeStrength, 35, 300, "Medium", "Leg day", "2023-10-14"},
	{"Power Yoga", domain.WorkoutTypeYoga, 60, 300, "Hard", "Sweaty", "2023-10-15"},
	{"Hiking", domain.WorkoutTypeCardio, 120, 800, "Medium", "Nature trail", "2023-10-16"},
	{"Pushups", domain.WorkoutTypeStrength, 10, 100, "Easy", "Quick set", "2023-10-17"},
	{"Rowing", domain.WorkoutTypeCardio, 30, 350, "Hard", "Ergometer", "2023-10-18"},
	{"Tai Chi", domain.WorkoutTypeYoga, 40, 100, "Easy", "Balance", "2023-10-19"},
	{"Crossfit", domain.WorkoutTypeStrength, 45, 550, "Hard", "WOD", "2023-10-20"},
}

func newSeedCmd(app *App) *cobra.Command {
	var (
		ownerID       string
		ownerUsername string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample workout set for one owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			stores, err := app.OpenStores(ctx, app.Config)
			if err != nil {
				return err
			}
			defer stores.Close(context.WithoutCancel(ctx))

			service := domain.NewService(stores.Workouts, stores.Consultations, domain.WithClock(app.Now))
			caller := access.Caller{ID: ownerID, Username: ownerUsername, Role: access.RoleUser}

			inserted, err := seedWorkouts(ctx, service, caller)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d workouts\n", inserted)
			return nil
		},
	}

	cmd.Flags().StringVar(&ownerID, "owner-id", "", "Owner user id for the seeded workouts")
	cmd.Flags().StringVar(&ownerUsername, "owner-username", "", "Owner username for the seeded workouts")
	_ = cmd.MarkFlagRequired("owner-id")
	_ = cmd.MarkFlagRequired("owner-username")
	return cmd
}

func seedWorkouts(ctx context.Context, service *domain.Service, caller access.Caller) (int, error) {
	for i, sample := range sampleWorkouts {
		duration, calories := sample.duration, sample.calories
		_, err := service.CreateWorkout(ctx, caller, domain.CreateWorkoutInput{
			Title:      sample.title,
			Type:       sample.kind,
			Duration:   &duration,
			Calories:   &calories,
			Date:       sample.date,
			Difficulty: sample.difficulty,
			Notes:      sample.notes,
		})
		if err != nil {
			return i, fmt.Errorf("seed %q: %w", sample.title, err)
		}
	}
	return len(sampleWorkouts), nil
}
