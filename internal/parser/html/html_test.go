package html

import "testing"

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Accès limité à la machinerie.", "Accès limité à la machinerie."},
		{"plain newlines kept", "123 rue de la République\n75000 Paris", "123 rue de la République\n75000 Paris"},
		{"br", "Ligne 1<br>Ligne 2<br/>Ligne 3", "Ligne 1\nLigne 2\nLigne 3"},
		{"paragraphs", "<p>Premier</p><p>Second  \n point</p>", "Premier\nSecond point"},
		{"entities", "Fuite &amp; usure &eacute;lev&eacute;e", "Fuite & usure élevée"},
		{"list", "<ul><li>Câbles</li><li>Poulie</li></ul>", "- Câbles\n- Poulie"},
		{"inline tags", "Frein <b>usé</b> à <i>remplacer</i>", "Frein usé à remplacer"},
		{"script dropped", "<script>alert(1)</script>Texte", "Texte"},
		{"lone angle bracket", "Charge < 630 kg", "Charge < 630 kg"},
		{"bracket before a word", "jeu porte<max autorisé", "jeu porte<max autorisé"},
		{"comparison and ampersand", "5<x>2 & 3<y", "5<x>2 & 3<y"},
		{"unknown tag kept", "valeur <mm> relevée", "valeur <mm> relevée"},
		{"br with attributes", "A<br class=\"x\">B", "A\nB"},
		{"plain newlines with entity", "Ligne 1\nFuite &amp; usure", "Ligne 1\nFuite & usure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.in); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
