package speech

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransliterate(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{"Лом", "Lom"},
		{"Свищов", "Svishtov"},
		{"Щит", "Shtit"},
		{"Тутракан", "Tutrakan"},
		{"Силистра 12/+3", "Silistra 12/+3"},
		{"Юг, ъгъл", "Yug, agal"},
		{"Lom", "Lom"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.expected, Transliterate(tc.in))
		})
	}
}

func TestPrepare_Russian(t *testing.T) {
	got := Prepare("Lom 448/-9\nRuse 389/+10\n", Russian)
	require.Equal(t, "Lom 448 сантиметрах, -9 сантиметрах. Ruse 389 сантиметрах, +10 сантиметрах", got)
}

func TestPrepare_RussianKeepsCyrillic(t *testing.T) {
	got := Prepare("Лом 448/-9\n", Russian)
	require.Equal(t, "Лом 448 сантиметрах, -9 сантиметрах", got)
}

func TestPrepare_French(t *testing.T) {
	got := Prepare("Лом 448/-9\nРусе 389/+10\n", French)
	require.Equal(t, "Lom 448 centimètre -9 centimètre. Ruse 389 centimètre +10 centimètre", got)
}

func TestPrepare_Empty(t *testing.T) {
	require.Equal(t, "", Prepare("", Russian))
}

func TestParseLanguage(t *testing.T) {
	lang, err := ParseLanguage("fr")
	require.NoError(t, err)
	require.Equal(t, Voice{Locale: "fr-FR", Name: "Celine"}, lang.Voice())

	lang, err = ParseLanguage("ru")
	require.NoError(t, err)
	require.Equal(t, Voice{Locale: "ru-RU", Name: "Maxim"}, lang.Voice())

	_, err = ParseLanguage("bg")
	require.Error(t, err)
}
