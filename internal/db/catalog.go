package db

type catalogMovement struct {
	name         string
	category     string
	equipment    string
	difficulty   string
	instructions string
}

var builtinMovements = []catalogMovement{
	{"Barbell Bench Press", "push", "barbell", "intermediate", "Lower the bar to mid chest, press back up with elbows at roughly 45 degrees."},
	{"Push-up", "push", "bodyweight", "beginner", "Keep a straight line from head to heels, lower the chest to the floor and press up."},
	{"Overhead Press", "push", "barbell", "intermediate", "Press the bar from the front rack to lockout overhead, ribs down."},
	{"Dumbbell Shoulder Press", "push", "dumbbell", "beginner", "Press both dumbbells overhead from shoulder height."},
	{"Cable Triceps Pushdown", "push", "cable", "beginner", "Keep elbows pinned and extend the arms fully."},
	{"Pull-up", "pull", "bodyweight", "intermediate", "From a dead hang pull until the chin clears the bar."},
	{"Barbell Row", "pull", "barbell", "intermediate", "Hinge forward and row the bar to the lower ribs."},
	{"Lat Pulldown", "pull", "machine", "beginner", "Pull the bar to the upper chest while keeping the torso upright."},
	{"Dumbbell Curl", "pull", "dumbbell", "beginner", "Curl the dumbbells without swinging the torso."},
	{"Back Squat", "legs", "barbell", "intermediate", "Sit down between the hips to at least parallel, drive up through the midfoot."},
	{"Romanian Deadlift", "legs", "barbell", "intermediate", "Hinge at the hips with soft knees until a hamstring stretch, then stand tall."},
	{"Walking Lunge", "legs", "dumbbell", "beginner", "Step forward and lower the back knee toward the floor, alternate legs."},
	{"Leg Press", "legs", "machine", "beginner", "Lower the sled under control and press without locking the knees."},
	{"Kettlebell Swing", "legs", "kettlebell", "intermediate", "Hike the bell back and snap the hips forward to float it to chest height."},
	{"Plank", "core", "bodyweight", "beginner", "Hold a straight body line on the forearms."},
	{"Hanging Leg Raise", "core", "bodyweight", "advanced", "From a hang raise straight legs to hip height without swinging."},
	{"Pallof Press", "core", "band", "beginner", "Press the band straight out and resist the rotation."},
	{"Rowing Machine", "cardio", "machine", "beginner", "Legs, then hips, then arms on the drive; reverse on the recovery."},
	{"Jump Rope", "cardio", "other", "beginner", "Stay on the balls of the feet with small, quick jumps."},
	{"Burpee", "cardio", "bodyweight", "intermediate", "Drop to a push-up, jump the feet in and jump up."},
}
