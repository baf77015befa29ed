// Package repomanager vends repositories bound to a dbx.DBTX, so a service
// can use the same repository types with either *sql.DB or a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophchat/internal/dbx"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/conversations"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/groups"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/messages"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Groups(db dbx.DBTX) groups.Repository
	Conversations(db dbx.DBTX) conversations.Repository
	Messages(db dbx.DBTX) messages.Repository
}
