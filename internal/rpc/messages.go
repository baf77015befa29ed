package rpc

import "time"

type Profile struct {
	Id       int64  `json:"id"`
	Username string `json:"username"`
	Bio      string `json:"bio,omitempty"`
}

type Conversation struct {
	Id        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name,omitempty"`
	GroupId   int64     `json:"group_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ConversationSummary struct {
	Conversation  *Conversation `json:"conversation"`
	DisplayName   string        `json:"display_name"`
	LastMessageAt *time.Time    `json:"last_message_at,omitempty"`
	Degraded      bool          `json:"degraded,omitempty"`
}

type Session struct {
	ConversationId int64   `json:"conversation_id"`
	Kind           string  `json:"kind"`
	SelfId         int64   `json:"self_id"`
	CounterpartId  int64   `json:"counterpart_id,omitempty"`
	Participants   []int64 `json:"participants"`
}

type Message struct {
	Id             int64     `json:"id"`
	ConversationId int64     `json:"conversation_id"`
	FromId         int64     `json:"from_id"`
	ToId           int64     `json:"to_id,omitempty"`
	SenderName     string    `json:"sender_name,omitempty"`
	Contents       string    `json:"contents"`
	CreatedAt      time.Time `json:"created_at"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterUserRequest struct {
	Username string `json:"username"`
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}

type RegisterUserResponse struct {
	UserId  string   `json:"user_id"`
	Profile *Profile `json:"profile"`
}

type GetSaltRequest struct {
	Username string `json:"username"`
}

type GetSaltResponse struct {
	Salt []byte `json:"salt"`
}

type LoginRequest struct {
	Username          string `json:"username"`
	VerifierCandidate []byte `json:"verifier_candidate"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type MeRequest struct{}

type MeResponse struct {
	Profile *Profile `json:"profile"`
}

type SearchProfilesRequest struct {
	Term string `json:"term"`
}

type SearchProfilesResponse struct {
	Profiles []*Profile `json:"profiles"`
	Degraded bool       `json:"degraded,omitempty"`
	Warning  string     `json:"warning,omitempty"`
}

type ResolveDirectRequest struct {
	ProfileId int64 `json:"profile_id"`
}

type StartGroupRequest struct {
	Name      string  `json:"name"`
	MemberIds []int64 `json:"member_ids"`
}

type ResolveGroupRequest struct {
	GroupId        int64   `json:"group_id"`
	ParticipantIds []int64 `json:"participant_ids"`
}

type ConversationResponse struct {
	Conversation *Conversation `json:"conversation"`
}

type OpenConversationRequest struct {
	ConversationId int64 `json:"conversation_id"`
}

type OpenConversationResponse struct {
	Session *Session `json:"session"`
}

type ListConversationsRequest struct{}

type ListConversationsResponse struct {
	Conversations []*ConversationSummary `json:"conversations"`
	Degraded      bool                   `json:"degraded,omitempty"`
	Warning       string                 `json:"warning,omitempty"`
}

type SendMessageRequest struct {
	ConversationId int64  `json:"conversation_id"`
	ToId           int64  `json:"to_id,omitempty"`
	Contents       string `json:"contents"`
}

type SendMessageResponse struct {
	Message *Message `json:"message"`
}

type HistoryRequest struct {
	ConversationId int64 `json:"conversation_id"`
}

type HistoryResponse struct {
	Messages []*Message `json:"messages"`
	Degraded bool       `json:"degraded,omitempty"`
	Warning  string     `json:"warning,omitempty"`
}
