package storage

// Key layout for session-scoped documents.

func CartKey(sessionID string) string     { return "cart:" + sessionID }
func SavedKey(sessionID string) string    { return "saved:" + sessionID }
func CheckoutKey(sessionID string) string { return "checkout:" + sessionID }
func OrderKey(sessionID string) string    { return "order:" + sessionID }
