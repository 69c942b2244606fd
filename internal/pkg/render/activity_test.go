package render

import "testing"

func TestResolveActivity(t *testing.T) {
	t.Run("Case insensitive", func(t *testing.T) {
		a := ResolveActivity("HACKATHON")
		b := ResolveActivity("hackathon")
		c := ResolveActivity("Hackathon")
		if a != b || b != c {
			t.Errorf("case variants must resolve identically: %+v %+v %+v", a, b, c)
		}
		if a.Title != "Hackathon Director" {
			t.Errorf("unexpected hackathon identity: %+v", a)
		}
	})

	t.Run("Grouped labels share a bucket", func(t *testing.T) {
		if ResolveActivity("Webinar") != ResolveActivity("Workshop") {
			t.Error("webinar and workshop belong to the same bucket")
		}
		if ResolveActivity("Online Course") != ResolveActivity("Workshop") {
			t.Error("online course and workshop belong to the same bucket")
		}
		if ResolveActivity("Volunteering") != ResolveActivity("Volunteer Work") {
			t.Error("volunteering labels belong to the same bucket")
		}
		if ResolveActivity("Project") != ResolveActivity("Innovation") {
			t.Error("project and innovation belong to the same bucket")
		}
	})

	t.Run("Total with default", func(t *testing.T) {
		def := ResolveActivity("underwater basket weaving")
		if def != defaultIdentity {
			t.Errorf("unmatched label should resolve to default, got %+v", def)
		}
		if ResolveActivity("") != defaultIdentity {
			t.Error("empty label should resolve to default")
		}
	})

	t.Run("Stable across calls", func(t *testing.T) {
		if ResolveActivity("Internship") != ResolveActivity("Internship") {
			t.Error("same label must resolve to the same tuple")
		}
	})
}
