package diagnostic

// DefaultTree 返回内置的三层领导力诊断决策树
func DefaultTree() *Tree {
	return &Tree{
		Root:      "q1",
		MaxDepth:  3,
		Questions: defaultQuestions(),
		Results:   defaultResults(),
	}
}

func defaultQuestions() map[string]*Question {
	questions := []*Question{
		{
			ID:   "q1",
			Text: "What's the main pressure you're feeling?",
			Options: []Option{
				{Label: "👤 People — someone (or the team) isn't working", Next: "q2_people"},
				{Label: "📋 Workload — too much to do, too many decisions", Next: "q2_workload"},
				{Label: "🧭 Direction — something feels off but I can't name it", Next: "q2_direction"},
			},
		},
		{
			ID:   "q2_people",
			Text: "Is this about one person, or the team as a whole?",
			Options: []Option{
				{Label: "One person — they're underperforming or causing problems", Next: "q3_one_person"},
				{Label: "The team — trust is low, there's tension, or we're stuck", Next: "r_team_dynamics"},
				{Label: "Honestly, it might be me", Next: "r_self_leadership"},
			},
		},
		{
			ID:   "q3_one_person",
			Text: "Have you had a direct, specific conversation about this yet?",
			Options: []Option{
				{Label: "No — I've been putting it off", Next: "r_feedback_first"},
				{Label: "Yes, but nothing changed", Next: "r_escalate"},
				{Label: "Yes, and I think it's time to let them go", Next: "r_letting_go"},
			},
		},
		{
			ID:   "q2_workload",
			Text: "What's the root of the overload?",
			Options: []Option{
				{Label: "I can't let go — I keep doing things myself", Next: "r_delegation"},
				{Label: "Everything feels urgent — I can't prioritise", Next: "r_prioritisation"},
				{Label: "Too many decisions land on my desk", Next: "r_decisions"},
			},
		},
		{
			ID:   "q2_direction",
			Text: "If you had to guess, where does the unease sit?",
			Options: []Option{
				{Label: "The team has lost energy — they're going through the motions", Next: "r_motivation"},
				{Label: "I'm not sure my leadership style fits what's needed right now", Next: "r_situational"},
				{Label: "We've lost sight of why we're doing this", Next: "r_purpose"},
			},
		},
	}

	out := make(map[string]*Question, len(questions))
	for _, q := range questions {
		out[q.ID] = q
	}
	return out
}

func defaultResults() map[string]*Result {
	results := []*Result{
		{
			ID:      "r_feedback_first",
			Title:   "Start with the conversation",
			Summary: "You can't fix what you haven't named. The first step is giving clear, specific feedback.",
			Path: []ReadingStep{
				{Name: "How to Give Feedback", URL: "modules/give-feedback.html", Why: "Learn the preparation-delivery-discussion-followup framework"},
				{Name: "How to Coach Your Team", URL: "modules/coach-your-team.html", Why: "If it's a skill gap, shift into coaching mode"},
				{Name: "Accountability", URL: "modules/accountability.html", Why: "If coaching doesn't work, build ownership with the Oz Principle"},
			},
			Reality: "If nothing changes after clear feedback and coaching, that's information — not failure.",
		},
		{
			ID:      "r_escalate",
			Title:   "Time to raise the stakes",
			Summary: "You've had the conversation. It didn't land. Now you need to decide: coach harder, restructure, or move on.",
			Path: []ReadingStep{
				{Name: "Accountability", URL: "modules/accountability.html", Why: "Move from 'Below the Line' blame to 'Above the Line' ownership"},
				{Name: "How to Talk to a Problem Employee", URL: "modules/problem-employee.html", Why: "Have the direct conversation with clear consequences"},
				{Name: "The Uncomfortable Truths", URL: "modules/uncomfortable-truths.html", Why: "Face the hard reality: not every person is fixable in every role"},
			},
			Reality: "The most common mistake here is waiting too long. Your team already knows.",
		},
		{
			ID:      "r_letting_go",
			Title:   "Do the due diligence, then decide",
			Summary: "If you're here, you probably already know the answer. Make sure you've done the work to act fairly.",
			Path: []ReadingStep{
				{Name: "20 Questions Before Firing", URL: "modules/20-questions-firing.html", Why: "Work through the full checklist before making the call"},
				{Name: "How to Talk to a Problem Employee", URL: "modules/problem-employee.html", Why: "One final, clear conversation with documented expectations"},
				{Name: "The Uncomfortable Truths", URL: "modules/uncomfortable-truths.html", Why: "The cost of inaction is invisible — until it isn't"},
			},
			Reality: "Delaying is not kindness. It's avoidance. The rest of your team is watching.",
		},
		{
			ID:      "r_team_dynamics",
			Title:   "Fix the foundation, not the symptoms",
			Summary: "Team dysfunction usually starts at the bottom of Lencioni's pyramid: trust.",
			Path: []ReadingStep{
				{Name: "5 Dysfunctions of a Team", URL: "modules/5-dysfunctions.html", Why: "Diagnose which layer of the pyramid is broken"},
				{Name: "Conflict Resolution", URL: "modules/conflict-resolution.html", Why: "Address the specific tensions with a structured approach"},
				{Name: "4C's Communication", URL: "modules/4cs-communication.html", Why: "Build better norms for how your team disagrees"},
			},
			Reality: "Some teams can't be saved — not because of bad people, but because of bad composition.",
		},
		{
			ID:      "r_self_leadership",
			Title:   "Start with the mirror",
			Summary: "The hardest leadership work isn't building systems — it's seeing yourself clearly.",
			Path: []ReadingStep{
				{Name: "The Uncomfortable Truths", URL: "modules/uncomfortable-truths.html", Why: "Truth #7: You are the constraint you can't see"},
				{Name: "Situational Leadership", URL: "modules/situational-leadership.html", Why: "Is your style mismatched to what the team needs right now?"},
				{Name: "How to Be a Less Stressed CEO", URL: "modules/less-stressed-ceo.html", Why: "Check your own state before diagnosing the team"},
			},
			Reality: "Ask your most trusted colleague: 'What's the one thing I do that holds this team back?'",
		},
		{
			ID:      "r_delegation",
			Title:   "Let go to level up",
			Summary: "If you're doing work that others could do, you're not leading — you're bottlenecking.",
			Path: []ReadingStep{
				{Name: "Delegation for Founders", URL: "modules/delegation-founders.html", Why: "Learn to delegate outcomes, not just tasks"},
				{Name: "Situational Leadership", URL: "modules/situational-leadership.html", Why: "Match your delegation style to each person's readiness"},
				{Name: "Authority & Power", URL: "modules/authority-power.html", Why: "Understand what authority you're holding onto and why"},
			},
			Reality: "The voice saying 'it's faster if I do it myself' is the voice that keeps you stuck.",
		},
		{
			ID:      "r_prioritisation",
			Title:   "Stop doing the wrong things well",
			Summary: "The problem isn't time management — it's that you haven't made the trade-offs explicit.",
			Path: []ReadingStep{
				{Name: "Prioritisation & Trade-offs", URL: "modules/prioritisation.html", Why: "Use the Eisenhower Matrix to sort what actually matters"},
				{Name: "Decision-Making", URL: "modules/decision-making.html", Why: "Use RAPID® to clarify who decides what"},
				{Name: "How to Take Better Breaks", URL: "modules/better-breaks.html", Why: "You can't prioritise clearly when you're running on empty"},
			},
			Reality: "If everything is urgent, nothing is. The courage is in choosing what not to do.",
		},
		{
			ID:      "r_decisions",
			Title:   "Push decisions down",
			Summary: "If too many decisions land on your desk, the problem isn't the decisions — it's the system.",
			Path: []ReadingStep{
				{Name: "Decision-Making", URL: "modules/decision-making.html", Why: "RAPID® framework: who recommends, who decides, who executes"},
				{Name: "Delegation for Founders", URL: "modules/delegation-founders.html", Why: "Give people the 'what' and 'why,' let them own the 'how'"},
				{Name: "Authority & Power", URL: "modules/authority-power.html", Why: "Understand the five bases of power and where to distribute them"},
			},
			Reality: "One-way doors deserve deliberation. Two-way doors should be made fast.",
		},
		{
			ID:      "r_motivation",
			Title:   "Reconnect the wiring",
			Summary: "When people go through the motions, the connection between work and meaning has eroded.",
			Path: []ReadingStep{
				{Name: "The Psychology of Motivation", URL: "modules/psychology-motivation.html", Why: "Check autonomy, competence, and relatedness"},
				{Name: "Start With Why", URL: "modules/start-with-why.html", Why: "When did you last talk about why the work matters?"},
				{Name: "Coaching Questions", URL: "modules/coaching-questions.html", Why: "Use 'What's the real challenge here for you?' to surface what's hidden"},
			},
			Reality: "Sometimes the energy is gone because the work has genuinely changed.",
		},
		{
			ID:      "r_situational",
			Title:   "Recalibrate your style",
			Summary: "The 'off' feeling often means your default style no longer fits the situation.",
			Path: []ReadingStep{
				{Name: "Situational Leadership", URL: "modules/situational-leadership.html", Why: "Re-diagnose each person's readiness level (R1-R4)"},
				{Name: "Leadership Stages", URL: "modules/leadership-stages.html", Why: "Has your business stage changed?"},
				{Name: "Growth Stage", URL: "modules/growth-stage.html", Why: "Start-up, scale-up, or grown-up — each demands a different leader"},
			},
			Reality: "The leadership style that built the team may not be the style that grows it.",
		},
		{
			ID:      "r_purpose",
			Title:   "Go back to the beginning",
			Summary: "If you've lost the 'why,' your team has too.",
			Path: []ReadingStep{
				{Name: "Start With Why", URL: "modules/start-with-why.html", Why: "Reconnect with the Golden Circle: Why → How → What"},
				{Name: "The Psychology of Motivation", URL: "modules/psychology-motivation.html", Why: "Intrinsic motivation drives long-term engagement"},
				{Name: "Stakeholder Management", URL: "modules/stakeholder-management.html", Why: "Re-map who you're serving and what they actually need"},
			},
			Reality: "If you can't articulate the 'why' in one sentence that makes someone lean forward, you don't have one yet.",
		},
	}

	out := make(map[string]*Result, len(results))
	for _, r := range results {
		out[r.ID] = r
	}
	return out
}
