package worldgen

// SplinePoint é um ponto de controle (valor de ruído -> altura de terreno).
type SplinePoint struct {
	Input  float32
	Output float32
}

// EvalSpline avalia uma spline linear por partes em t.
// Fora do intervalo de controle o resultado é grampeado no primeiro/último
// ponto (sem extrapolação). As listas têm no máximo meia dúzia de pontos,
// então a busca linear pelos dois pontos vizinhos é suficiente.
func EvalSpline(spline []SplinePoint, t float32) float32 {
	if len(spline) == 0 {
		return 0
	}
	if t <= spline[0].Input {
		return spline[0].Output
	}
	if t >= spline[len(spline)-1].Input {
		return spline[len(spline)-1].Output
	}

	for i := 0; i < len(spline)-1; i++ {
		if t >= spline[i].Input && t <= spline[i+1].Input {
			localT := (t - spline[i].Input) / (spline[i+1].Input - spline[i].Input)
			return spline[i].Output + localT*(spline[i+1].Output-spline[i].Output)
		}
	}
	return 0
}
