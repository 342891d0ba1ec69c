package i18n

// Messages holds every user-facing notice of the client.
type Messages struct {
	Sealing        string
	Sealed         string
	UsernameTaken  string
	SavedOffline   string
	Updated        string
	UpdatedLocally string
	Deleted        string
	DeleteFailed   string
	Busy           string
}

var bundles = map[Locale]Messages{
	English: {
		Sealing:        "Sealing your moment...",
		Sealed:         "Moment sealed forever",
		UsernameTaken:  "Username taken. Try another.",
		SavedOffline:   "Saved locally (Offline Mode)",
		Updated:        "Moment updated successfully",
		UpdatedLocally: "Moment updated locally",
		Deleted:        "Moment deleted",
		DeleteFailed:   "Could not delete your moment. Try again.",
		Busy:           "Please wait, a request is already in progress.",
	},
	Spanish: {
		Sealing:        "Sellando tu momento...",
		Sealed:         "Momento sellado para siempre",
		UsernameTaken:  "Nombre de usuario ocupado. Prueba otro.",
		SavedOffline:   "Guardado localmente (modo sin conexión)",
		Updated:        "Momento actualizado correctamente",
		UpdatedLocally: "Momento actualizado localmente",
		Deleted:        "Momento eliminado",
		DeleteFailed:   "No se pudo eliminar tu momento. Inténtalo de nuevo.",
		Busy:           "Espera, ya hay una solicitud en curso.",
	},
	French: {
		Sealing:        "Scellement de votre moment...",
		Sealed:         "Moment scellé pour toujours",
		UsernameTaken:  "Nom d'utilisateur déjà pris. Essayez-en un autre.",
		SavedOffline:   "Enregistré localement (mode hors ligne)",
		Updated:        "Moment mis à jour avec succès",
		UpdatedLocally: "Moment mis à jour localement",
		Deleted:        "Moment supprimé",
		DeleteFailed:   "Impossible de supprimer votre moment. Réessayez.",
		Busy:           "Patientez, une requête est déjà en cours.",
	},
	German: {
		Sealing:        "Dein Moment wird versiegelt...",
		Sealed:         "Moment für immer versiegelt",
		UsernameTaken:  "Benutzername vergeben. Versuche einen anderen.",
		SavedOffline:   "Lokal gespeichert (Offline-Modus)",
		Updated:        "Moment erfolgreich aktualisiert",
		UpdatedLocally: "Moment lokal aktualisiert",
		Deleted:        "Moment gelöscht",
		DeleteFailed:   "Dein Moment konnte nicht gelöscht werden. Versuche es erneut.",
		Busy:           "Bitte warten, eine Anfrage läuft bereits.",
	},
	Italian: {
		Sealing:        "Sigillando il tuo momento...",
		Sealed:         "Momento sigillato per sempre",
		UsernameTaken:  "Nome utente già in uso. Provane un altro.",
		SavedOffline:   "Salvato in locale (modalità offline)",
		Updated:        "Momento aggiornato con successo",
		UpdatedLocally: "Momento aggiornato in locale",
		Deleted:        "Momento eliminato",
		DeleteFailed:   "Impossibile eliminare il tuo momento. Riprova.",
		Busy:           "Attendi, una richiesta è già in corso.",
	},
	Portuguese: {
		Sealing:        "Selando o seu momento...",
		Sealed:         "Momento selado para sempre",
		UsernameTaken:  "Nome de usuário em uso. Tente outro.",
		SavedOffline:   "Salvo localmente (modo offline)",
		Updated:        "Momento atualizado com sucesso",
		UpdatedLocally: "Momento atualizado localmente",
		Deleted:        "Momento excluído",
		DeleteFailed:   "Não foi possível excluir o seu momento. Tente novamente.",
		Busy:           "Aguarde, uma solicitação já está em andamento.",
	},
	Japanese: {
		Sealing:        "瞬間を封印しています...",
		Sealed:         "瞬間は永遠に封印されました",
		UsernameTaken:  "このユーザー名は使用されています。別の名前をお試しください。",
		SavedOffline:   "ローカルに保存しました（オフラインモード）",
		Updated:        "瞬間を更新しました",
		UpdatedLocally: "瞬間をローカルで更新しました",
		Deleted:        "瞬間を削除しました",
		DeleteFailed:   "瞬間を削除できませんでした。もう一度お試しください。",
		Busy:           "お待ちください。リクエストを処理中です。",
	},
	Chinese: {
		Sealing:        "正在封存你的时刻...",
		Sealed:         "时刻已永久封存",
		UsernameTaken:  "用户名已被占用，请换一个。",
		SavedOffline:   "已保存到本地（离线模式）",
		Updated:        "时刻更新成功",
		UpdatedLocally: "时刻已在本地更新",
		Deleted:        "时刻已删除",
		DeleteFailed:   "无法删除你的时刻，请重试。",
		Busy:           "请稍候，已有请求正在处理。",
	},
}

// For returns the messages of l. Unknown locales get English, and any field
// a bundle leaves empty is taken from English.
func For(l Locale) Messages {
	m, ok := bundles[l]
	if !ok {
		return bundles[Default]
	}
	return withFallback(m, bundles[Default])
}

func withFallback(m, fallback Messages) Messages {
	pairs := []struct{ dst, src *string }{
		{&m.Sealing, &fallback.Sealing},
		{&m.Sealed, &fallback.Sealed},
		{&m.UsernameTaken, &fallback.UsernameTaken},
		{&m.SavedOffline, &fallback.SavedOffline},
		{&m.Updated, &fallback.Updated},
		{&m.UpdatedLocally, &fallback.UpdatedLocally},
		{&m.Deleted, &fallback.Deleted},
		{&m.DeleteFailed, &fallback.DeleteFailed},
		{&m.Busy, &fallback.Busy},
	}
	for _, p := range pairs {
		if *p.dst == "" {
			*p.dst = *p.src
		}
	}
	return m
}
