package notation_test

import (
	"fmt"

	"github.com/panforge/panlayout/pkg/notation"
	"github.com/panforge/panlayout/pkg/spell"
)

func ExampleParse() {
	// Kurd 9: the ding, then eight tonal notes climbing through C
	l, err := notation.Parse("D/-A-Bb-C-D-E-F-G-A_")
	if err != nil {
		panic(err)
	}

	sp := spell.NewSpelling(l.Root(), spell.Aeolian, spell.AccidentalsAuto, spell.NamingAmerican)
	for _, n := range l.Notes {
		fmt.Printf("%-6s %-4s %s\n", n.Role, n.DisplayName(sp), n.SampleName())
	}
	// Output:
	// ding   D3   D3
	// tonal  A3   A3
	// tonal  Bb3  As3
	// tonal  C4   C4
	// tonal  D4   D4
	// tonal  E4   E4
	// tonal  F4   F4
	// tonal  G4   G4
	// tonal  A4   A4
}

func ExampleParse_bottoms() {
	// Bottom notes keep their own octave cursor
	l, _ := notation.Parse("D/(F)-(G)-A-Bb-C-D-E-F-G-A-C")

	fmt.Println("bottoms:", l.ByRole(notation.Bottom))
	fmt.Println("tonal:  ", l.ByRole(notation.Tonal))
	// Output:
	// bottoms: [F3 G3]
	// tonal:   [A3 A#3 C4 D4 E4 F4 G4 A4 C5]
}

func ExampleLayout_Canonical() {
	l, _ := notation.Parse("F#/-G#-A-C#-E-[F#]-G#-A-C#")
	fmt.Println(l.Canonical())
	// Output:
	// F#3/-G#3-A3-C#4-E4-[F#4]-G#4-A4-C#5
}

func ExampleParseError() {
	_, err := notation.Parse("D/-A-H-C")
	fmt.Println(err)
	// Output:
	// note "H" at token 1: INVALID_PITCH_CLASS: unrecognized pitch class "H"
}
