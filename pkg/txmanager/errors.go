package txmanager

import "errors"

var (
	// ErrBeginTx возвращается, когда не удалось начать транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommit возвращается, когда не удалось зафиксировать транзакцию
	ErrCommit = errors.New("txmanager: failed to commit transaction")

	// ErrSerialization возвращается, когда PostgreSQL отменил транзакцию из-за конфликта
	// сериализации или дедлока. Состояние БД не изменилось, операцию можно повторить
	// после перечитывания данных
	ErrSerialization = errors.New("txmanager: serialization failure")
)
