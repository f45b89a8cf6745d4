package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/controllers"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/nav"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/trails"
)

func (s *Shell) render(entry nav.Entry) {
	fmt.Fprintln(s.out)
	switch entry.Route {
	case nav.Login:
		fmt.Fprintln(s.out, s.styles.Title.Render("Login"))
		fmt.Fprintln(s.out, s.styles.Muted.Render("Commands: login, register, help"))
	case nav.Register:
		fmt.Fprintln(s.out, s.styles.Title.Render("Create Account"))
		fmt.Fprintln(s.out, s.styles.Muted.Render("Commands: submit, back, help"))
	case nav.Home:
		fmt.Fprintln(s.out, s.styles.Title.Render("Home"))
		if s.session != nil {
			fmt.Fprintln(s.out, "Signed in as "+s.session.Email)
		}
		s.renderMap()
		fmt.Fprintln(s.out, s.styles.Muted.Render("Commands: fact, search <text>, map, trails, profile, help"))
	case nav.FunFact:
		fmt.Fprintln(s.out, s.styles.Title.Render("Fun Fact"))
		fmt.Fprintln(s.out, s.styles.Fact.Render(controllers.FunFactText(entry)))
	case nav.Results:
		fmt.Fprintln(s.out, s.styles.Title.Render("Nearby Trails"))
		s.renderTrails()
	case nav.Profile:
		fmt.Fprintln(s.out, s.styles.Title.Render("Profile"))
		if s.session != nil {
			fmt.Fprintln(s.out, "Email: "+s.session.Email)
		}
		fmt.Fprintln(s.out, s.styles.Muted.Render("Commands: logout, back, help"))
	}
}

func (s *Shell) renderMap() {
	m := s.cfg.Map
	lines := []string{
		fmt.Sprintf("Region  %.6f, %.6f  (delta %.3f x %.3f)",
			m.Region.Latitude, m.Region.Longitude, m.Region.LatitudeDelta, m.Region.LongitudeDelta),
		fmt.Sprintf("Marker  %s: %s  at %.6f, %.6f",
			m.Marker.Title, m.Marker.Description, m.Marker.Latitude, m.Marker.Longitude),
	}
	fmt.Fprintln(s.out, s.styles.Panel.Render(strings.Join(lines, "\n")))
}

func (s *Shell) renderTrails() {
	widths := []int{4, 24, 12, 8}
	row := func(style func(string, int) string, cells ...string) string {
		var b strings.Builder
		for i, c := range cells {
			b.WriteString(style(c, widths[i]))
		}
		return strings.TrimRight(b.String(), " ")
	}
	header := func(c string, w int) string { return s.styles.Header.Width(w).Render(c) }
	cell := func(c string, w int) string { return s.styles.Cell.Width(w).Render(c) }

	fmt.Fprintln(s.out, row(header, "#", "Trail", "Difficulty", "Distance"))
	for _, t := range trails.List() {
		fmt.Fprintln(s.out, row(cell, strconv.Itoa(t.ID), t.Name, t.Difficulty, t.Distance))
	}
}

func (s *Shell) renderMarkdown(src string) string {
	if s.md == nil {
		return src
	}
	out, err := s.md.Render(src)
	if err != nil {
		return src
	}
	return strings.TrimRight(out, "\n")
}
