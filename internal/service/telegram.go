package service

type Telegram interface {
	Start()
	Stop()
}
