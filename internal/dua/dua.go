// Package dua holds the built-in catalog of supplications.
package dua

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Dua is one supplication with its source reference.
type Dua struct {
	ID              string `json:"id"`
	Category        string `json:"category"`
	Title           string `json:"title"`
	Arabic          string `json:"arabic"`
	Transliteration string `json:"transliteration"`
	Translation     string `json:"translation"`
	Reference       string `json:"reference"`
}

var catalog = [...]Dua{
	{
		ID:              "1",
		Category:        "Morning/Evening",
		Title:           "Morning Remembrance",
		Arabic:          "أَصْبَحْنَا وَأَصْبَحَ الْمُلْكُ لِلَّهِ، وَالْحَمْدُ لِلَّهِ لَا شَرِيكَ لَهُ، لَا إِلَهَ إِلَّا هُوَ وَإِلَيْهِ النُّشُورُ",
		Transliteration: "Asbahna wa-asbahal-mulku lillah, walhamdu lillah, la sharika lah, la ilaha illa hu, wa-ilaihin-nushur.",
		Translation:     "We have entered a new morning and the kingdom belongs to Allah, all praise is due to Allah, He has no partner, there is no God but He, and unto Him is the return.",
		Reference:       "Muslim 4:2088",
	},
	{
		ID:              "2",
		Category:        "Prayers",
		Title:           "After Prayer",
		Arabic:          "أَسْتَغْفِرُ اللَّهَ، أَسْتَغْفِرُ اللَّهَ، أَسْتَغْفِرُ اللَّهَ",
		Transliteration: "Astaghfirullah, Astaghfirullah, Astaghfirullah.",
		Translation:     "I ask Allah for forgiveness (3 times).",
		Reference:       "Muslim 1:414",
	},
	{
		ID:              "3",
		Category:        "Daily Life",
		Title:           "Before Eating",
		Arabic:          "بِسْمِ اللَّهِ",
		Transliteration: "Bismillah.",
		Translation:     "In the name of Allah.",
		Reference:       "Abu Dawud 3:347",
	},
	{
		ID:              "4",
		Category:        "Forgiveness",
		Title:           "Sayyidul Istighfar",
		Arabic:          "اللَّهُمَّ أَنْتَ رَبِّي لَا إِلَهَ إِلَّا أَنْتَ، خَلَقْتَنِي وَأَنَا عَبْدُكَ، وَأَنَا عَلَى عَهْدِكَ وَوَعْدِكَ مَا اسْتَطَعْتُ، أَعُوذُ بِكَ مِنْ شَرِّ مَا صَنَعْتُ، أَبُوءُ لَكَ بِنِعْمَتِكَ عَلَيَّ، وَأَبُوءُ لَكَ بِذَنْبِي فَاغْفِرْ لِي فَإِنَّهُ لَا يَغْفِرُ الذُّنُوبَ إِلَّا أَنْتَ",
		Transliteration: "Allahumma Anta Rabbi la ilaha illa Ant, khalaqtani wa ana abduk, wa ana ala ahdika wa wadika mastatatu, audhu bika min sharri ma sanatu, abuu laka binimatika alayya, wa abuu laka bidhanbi faghfir li fainnahu la yaghfirud-dhunuba illa Ant.",
		Translation:     "O Allah, You are my Lord, there is no God but You. You created me and I am Your slave, and I am faithful to my covenant and my promise to You as much as I can. I seek refuge with You from all the evil I have done. I acknowledge before You all the blessings You have bestowed upon me, and I confess to You all my sins. So I entreat You to forgive me, for no one can forgive sins except You.",
		Reference:       "Bukhari 7:6306",
	},
	{
		ID:              "5",
		Category:        "Travel",
		Title:           "Leaving Home",
		Arabic:          "بِسْمِ اللَّهِ تَوَكَّلْتُ عَلَى اللَّهِ، وَلَا حَوْلَ وَلَا قُوَّةَ إِلَّا بِاللَّهِ",
		Transliteration: "Bismillahi tawakkaltu alallahi, wa la hawla wa la quwwata illa billah.",
		Translation:     "In the name of Allah, I place my trust in Allah, and there is no might nor power except with Allah.",
		Reference:       "Abu Dawud 4:325",
	},
}

// All returns a copy of the catalog in catalog order.
func All() []Dua {
	out := make([]Dua, len(catalog))
	copy(out, catalog[:])
	return out
}

// Categories returns the distinct categories in catalog order.
func Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for _, d := range catalog {
		if !seen[d.Category] {
			seen[d.Category] = true
			out = append(out, d.Category)
		}
	}
	return out
}

// ByCategory returns the duas in category. Matching ignores case and
// punctuation, so "morning-evening" selects "Morning/Evening". An empty
// category returns the whole catalog; an unknown one is an error.
func ByCategory(category string) ([]Dua, error) {
	if strings.TrimSpace(category) == "" {
		return All(), nil
	}
	want := fold(category)
	var out []Dua
	for _, d := range catalog {
		if fold(d.Category) == want {
			out = append(out, d)
		}
	}
	if out == nil {
		return nil, fmt.Errorf("unknown category %q (valid: %s)", category, strings.Join(Categories(), ", "))
	}
	return out, nil
}

// Get returns the dua with the given id.
func Get(id string) (Dua, error) {
	for _, d := range catalog {
		if d.ID == strings.TrimSpace(id) {
			return d, nil
		}
	}
	return Dua{}, fmt.Errorf("no dua with id %q", id)
}

func fold(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, cases.Fold().String(s))
}
