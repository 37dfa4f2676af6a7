package nutrition

import "testing"

func TestCalorieNeedsMale(t *testing.T) {
	// BMR = 10*80 + 6.25*180 - 5*30 + 5 = 1780, moderate = 1.55
	got := CalorieNeeds(30, "male", 80, 180, "moderate", "Maintenance")
	if got != 2759 {
		t.Fatalf("expected 2759, got %d", got)
	}
}

func TestCalorieNeedsFemale(t *testing.T) {
	// BMR = 10*60 + 6.25*165 - 5*25 - 161 = 1345.25, sedentary = 1.2
	got := CalorieNeeds(25, "female", 60, 165, "sedentary", "General Wellness")
	if got != 1614 {
		t.Fatalf("expected 1614, got %d", got)
	}
}

func TestCalorieNeedsGoalAdjustments(t *testing.T) {
	maintenance := CalorieNeeds(30, "male", 80, 180, "moderate", "Maintenance")
	loss := CalorieNeeds(30, "male", 80, 180, "moderate", "Weight Loss")
	gain := CalorieNeeds(30, "male", 80, 180, "moderate", "Weight Gain")
	muscle := CalorieNeeds(30, "male", 80, 180, "moderate", "Muscle Building")

	if loss >= maintenance {
		t.Fatalf("weight loss target %d should be below maintenance %d", loss, maintenance)
	}
	if gain <= maintenance {
		t.Fatalf("weight gain target %d should be above maintenance %d", gain, maintenance)
	}
	if muscle <= maintenance || muscle >= gain {
		t.Fatalf("muscle building target %d should sit between maintenance %d and gain %d", muscle, maintenance, gain)
	}
	if loss != 2207 {
		t.Fatalf("expected weight loss target 2207, got %d", loss)
	}
}

func TestCalorieNeedsUnknownActivityFallsBackToSedentary(t *testing.T) {
	sedentary := CalorieNeeds(30, "male", 80, 180, "sedentary", "Maintenance")
	unknown := CalorieNeeds(30, "male", 80, 180, "couch-potato", "Maintenance")
	if unknown != sedentary {
		t.Fatalf("expected fallback to sedentary (%d), got %d", sedentary, unknown)
	}
}

func TestMacroSplit(t *testing.T) {
	protein, carbs, fat := MacroSplit(2000, "Muscle Building")
	if protein != 175 || carbs != 200 || fat != 56 {
		t.Fatalf("expected 175/200/56, got %d/%d/%d", protein, carbs, fat)
	}
}

func TestPrimaryGoal(t *testing.T) {
	if got := PrimaryGoal([]string{"Get Shredded", "Muscle Building"}); got != "Muscle Building" {
		t.Fatalf("expected first recognized goal, got %q", got)
	}
	if got := PrimaryGoal([]string{"Get Shredded"}); got != "Get Shredded" {
		t.Fatalf("expected passthrough for unrecognized goals, got %q", got)
	}
	if got := PrimaryGoal(nil); got != "General Wellness" {
		t.Fatalf("expected General Wellness default, got %q", got)
	}
}

func TestMacroSplitUnknownGoalUsesGeneralWellness(t *testing.T) {
	protein, carbs, fat := MacroSplit(2000, "no-such-goal")
	wantP, wantC, wantF := MacroSplit(2000, "General Wellness")
	if protein != wantP || carbs != wantC || fat != wantF {
		t.Fatalf("expected %d/%d/%d, got %d/%d/%d", wantP, wantC, wantF, protein, carbs, fat)
	}
}
