package util

// Times holds the metrics derived for a single process.
type Times struct {
	Turnaround int `json:"turnaround_time"`
	Waiting    int `json:"waiting_time"`
	Response   int `json:"response_time"`
}

// CalculateTimes derives turnaround, waiting and response time from the raw
// timeline events of a process.
func CalculateTimes(arrival, burst, completion, firstDispatch int) Times {
	turnaround := completion - arrival
	return Times{
		Turnaround: turnaround,
		Waiting:    turnaround - burst,
		Response:   firstDispatch - arrival,
	}
}

func CalculateAverage(details []Times) (averageWaitingTime, averageResponseTime, averageTurnAroundTime float64) {
	if len(details) == 0 {
		return
	}

	var waitingTimeSum float64
	var responseTimeSum float64
	var turnAroundTimeSum float64

	for _, d := range details {
		waitingTimeSum += float64(d.Waiting)
		responseTimeSum += float64(d.Response)
		turnAroundTimeSum += float64(d.Turnaround)
	}

	count := float64(len(details))

	averageWaitingTime = waitingTimeSum / count
	averageResponseTime = responseTimeSum / count
	averageTurnAroundTime = turnAroundTimeSum / count
	return
}

// CalculateUtilization returns busy/span as a percentage, 0 when span is 0.
func CalculateUtilization(busy, span int) float64 {
	if span <= 0 {
		return 0
	}
	return float64(busy) / float64(span) * 100
}

// CalculateThroughput returns completed processes per time unit.
func CalculateThroughput(completed, span int) float64 {
	if span <= 0 {
		return 0
	}
	return float64(completed) / float64(span)
}
