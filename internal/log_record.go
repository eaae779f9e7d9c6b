package internal

import "time"

const ServiceLogMessageType = "serviceLogMessage"

type ServiceLogMessage struct {
	Time       string    `json:"time" bson:"time"`
	TimeStamp  time.Time `json:"timestamp" bson:"timestamp"`
	Feature    string    `json:"feature" bson:"feature"`
	RequestId  string    `json:"request_id" bson:"request_id"`
	Text       string    `json:"text" bson:"text"`
	Importance string    `json:"importance" bson:"importance"`
}

func (sm *ServiceLogMessage) DataType() string {
	return ServiceLogMessageType
}
