package concurrency

// Log messages
const (
	LogMsgRoomTaskPanicked = "Room task panicked, continuing with next task"
	LogMsgRoomTaskFailed   = "Room task returned an error"
	LogMsgRoomQueueDrained = "Room queue drained"
)
