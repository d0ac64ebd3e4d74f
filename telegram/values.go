package telegram

import tgskema "github.com/reoring/tgskema"

func str(m tgskema.Model, name string) string { return tgskema.Value[string](m, name) }

func num(m tgskema.Model, name string) int64 {
	n, _ := tgskema.IntValue(m, name)
	return n
}

func flag(m tgskema.Model, name string) bool { return tgskema.Value[bool](m, name) }

func float(m tgskema.Model, name string) float64 { return tgskema.Value[float64](m, name) }
