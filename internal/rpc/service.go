package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "gophchat.ChatService"

const (
	ChatService_Ping_FullMethodName              = "/gophchat.ChatService/Ping"
	ChatService_RegisterUser_FullMethodName      = "/gophchat.ChatService/RegisterUser"
	ChatService_GetSalt_FullMethodName           = "/gophchat.ChatService/GetSalt"
	ChatService_Login_FullMethodName             = "/gophchat.ChatService/Login"
	ChatService_RefreshToken_FullMethodName      = "/gophchat.ChatService/RefreshToken"
	ChatService_Me_FullMethodName                = "/gophchat.ChatService/Me"
	ChatService_SearchProfiles_FullMethodName    = "/gophchat.ChatService/SearchProfiles"
	ChatService_ResolveDirect_FullMethodName     = "/gophchat.ChatService/ResolveDirect"
	ChatService_StartGroup_FullMethodName        = "/gophchat.ChatService/StartGroup"
	ChatService_ResolveGroup_FullMethodName      = "/gophchat.ChatService/ResolveGroup"
	ChatService_OpenConversation_FullMethodName  = "/gophchat.ChatService/OpenConversation"
	ChatService_ListConversations_FullMethodName = "/gophchat.ChatService/ListConversations"
	ChatService_SendMessage_FullMethodName       = "/gophchat.ChatService/SendMessage"
	ChatService_History_FullMethodName           = "/gophchat.ChatService/History"
)

// ChatServiceServer is implemented by the server.
type ChatServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error)
	GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	Me(context.Context, *MeRequest) (*MeResponse, error)
	SearchProfiles(context.Context, *SearchProfilesRequest) (*SearchProfilesResponse, error)
	ResolveDirect(context.Context, *ResolveDirectRequest) (*ConversationResponse, error)
	StartGroup(context.Context, *StartGroupRequest) (*ConversationResponse, error)
	ResolveGroup(context.Context, *ResolveGroupRequest) (*ConversationResponse, error)
	OpenConversation(context.Context, *OpenConversationRequest) (*OpenConversationResponse, error)
	ListConversations(context.Context, *ListConversationsRequest) (*ListConversationsResponse, error)
	SendMessage(context.Context, *SendMessageRequest) (*SendMessageResponse, error)
	History(context.Context, *HistoryRequest) (*HistoryResponse, error)
}

// UnimplementedChatServiceServer answers every method with codes.Unimplemented.
// Embed it to stay compatible when methods are added.
type UnimplementedChatServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedChatServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented("Ping")
}
func (UnimplementedChatServiceServer) RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error) {
	return nil, unimplemented("RegisterUser")
}
func (UnimplementedChatServiceServer) GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error) {
	return nil, unimplemented("GetSalt")
}
func (UnimplementedChatServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedChatServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, unimplemented("RefreshToken")
}
func (UnimplementedChatServiceServer) Me(context.Context, *MeRequest) (*MeResponse, error) {
	return nil, unimplemented("Me")
}
func (UnimplementedChatServiceServer) SearchProfiles(context.Context, *SearchProfilesRequest) (*SearchProfilesResponse, error) {
	return nil, unimplemented("SearchProfiles")
}
func (UnimplementedChatServiceServer) ResolveDirect(context.Context, *ResolveDirectRequest) (*ConversationResponse, error) {
	return nil, unimplemented("ResolveDirect")
}
func (UnimplementedChatServiceServer) StartGroup(context.Context, *StartGroupRequest) (*ConversationResponse, error) {
	return nil, unimplemented("StartGroup")
}
func (UnimplementedChatServiceServer) ResolveGroup(context.Context, *ResolveGroupRequest) (*ConversationResponse, error) {
	return nil, unimplemented("ResolveGroup")
}
func (UnimplementedChatServiceServer) OpenConversation(context.Context, *OpenConversationRequest) (*OpenConversationResponse, error) {
	return nil, unimplemented("OpenConversation")
}
func (UnimplementedChatServiceServer) ListConversations(context.Context, *ListConversationsRequest) (*ListConversationsResponse, error) {
	return nil, unimplemented("ListConversations")
}
func (UnimplementedChatServiceServer) SendMessage(context.Context, *SendMessageRequest) (*SendMessageResponse, error) {
	return nil, unimplemented("SendMessage")
}
func (UnimplementedChatServiceServer) History(context.Context, *HistoryRequest) (*HistoryResponse, error) {
	return nil, unimplemented("History")
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](fullMethod string, call func(ChatServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ChatServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ChatServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ChatService_ServiceDesc is the grpc.ServiceDesc for ChatService.
var ChatService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ChatServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(ChatService_Ping_FullMethodName, ChatServiceServer.Ping)},
		{MethodName: "RegisterUser", Handler: unaryHandler(ChatService_RegisterUser_FullMethodName, ChatServiceServer.RegisterUser)},
		{MethodName: "GetSalt", Handler: unaryHandler(ChatService_GetSalt_FullMethodName, ChatServiceServer.GetSalt)},
		{MethodName: "Login", Handler: unaryHandler(ChatService_Login_FullMethodName, ChatServiceServer.Login)},
		{MethodName: "RefreshToken", Handler: unaryHandler(ChatService_RefreshToken_FullMethodName, ChatServiceServer.RefreshToken)},
		{MethodName: "Me", Handler: unaryHandler(ChatService_Me_FullMethodName, ChatServiceServer.Me)},
		{MethodName: "SearchProfiles", Handler: unaryHandler(ChatService_SearchProfiles_FullMethodName, ChatServiceServer.SearchProfiles)},
		{MethodName: "ResolveDirect", Handler: unaryHandler(ChatService_ResolveDirect_FullMethodName, ChatServiceServer.ResolveDirect)},
		{MethodName: "StartGroup", Handler: unaryHandler(ChatService_StartGroup_FullMethodName, ChatServiceServer.StartGroup)},
		{MethodName: "ResolveGroup", Handler: unaryHandler(ChatService_ResolveGroup_FullMethodName, ChatServiceServer.ResolveGroup)},
		{MethodName: "OpenConversation", Handler: unaryHandler(ChatService_OpenConversation_FullMethodName, ChatServiceServer.OpenConversation)},
		{MethodName: "ListConversations", Handler: unaryHandler(ChatService_ListConversations_FullMethodName, ChatServiceServer.ListConversations)},
		{MethodName: "SendMessage", Handler: unaryHandler(ChatService_SendMessage_FullMethodName, ChatServiceServer.SendMessage)},
		{MethodName: "History", Handler: unaryHandler(ChatService_History_FullMethodName, ChatServiceServer.History)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophchat/chat.json",
}

func RegisterChatServiceServer(s grpc.ServiceRegistrar, srv ChatServiceServer) {
	s.RegisterService(&ChatService_ServiceDesc, srv)
}

// ChatServiceClient is the client API for ChatService.
type ChatServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error)
	GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	Me(ctx context.Context, in *MeRequest, opts ...grpc.CallOption) (*MeResponse, error)
	SearchProfiles(ctx context.Context, in *SearchProfilesRequest, opts ...grpc.CallOption) (*SearchProfilesResponse, error)
	ResolveDirect(ctx context.Context, in *ResolveDirectRequest, opts ...grpc.CallOption) (*ConversationResponse, error)
	StartGroup(ctx context.Context, in *StartGroupRequest, opts ...grpc.CallOption) (*ConversationResponse, error)
	ResolveGroup(ctx context.Context, in *ResolveGroupRequest, opts ...grpc.CallOption) (*ConversationResponse, error)
	OpenConversation(ctx context.Context, in *OpenConversationRequest, opts ...grpc.CallOption) (*OpenConversationResponse, error)
	ListConversations(ctx context.Context, in *ListConversationsRequest, opts ...grpc.CallOption) (*ListConversationsResponse, error)
	SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*SendMessageResponse, error)
	History(ctx context.Context, in *HistoryRequest, opts ...grpc.CallOption) (*HistoryResponse, error)
}

type chatServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewChatServiceClient(cc grpc.ClientConnInterface) ChatServiceClient {
	return &chatServiceClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chatServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, ChatService_Ping_FullMethodName, in, opts)
}

func (c *chatServiceClient) RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error) {
	return invoke[RegisterUserResponse](ctx, c.cc, ChatService_RegisterUser_FullMethodName, in, opts)
}

func (c *chatServiceClient) GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error) {
	return invoke[GetSaltResponse](ctx, c.cc, ChatService_GetSalt_FullMethodName, in, opts)
}

func (c *chatServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, ChatService_Login_FullMethodName, in, opts)
}

func (c *chatServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, ChatService_RefreshToken_FullMethodName, in, opts)
}

func (c *chatServiceClient) Me(ctx context.Context, in *MeRequest, opts ...grpc.CallOption) (*MeResponse, error) {
	return invoke[MeResponse](ctx, c.cc, ChatService_Me_FullMethodName, in, opts)
}

func (c *chatServiceClient) SearchProfiles(ctx context.Context, in *SearchProfilesRequest, opts ...grpc.CallOption) (*SearchProfilesResponse, error) {
	return invoke[SearchProfilesResponse](ctx, c.cc, ChatService_SearchProfiles_FullMethodName, in, opts)
}

func (c *chatServiceClient) ResolveDirect(ctx context.Context, in *ResolveDirectRequest, opts ...grpc.CallOption) (*ConversationResponse, error) {
	return invoke[ConversationResponse](ctx, c.cc, ChatService_ResolveDirect_FullMethodName, in, opts)
}

func (c *chatServiceClient) StartGroup(ctx context.Context, in *StartGroupRequest, opts ...grpc.CallOption) (*ConversationResponse, error) {
	return invoke[ConversationResponse](ctx, c.cc, ChatService_StartGroup_FullMethodName, in, opts)
}

func (c *chatServiceClient) ResolveGroup(ctx context.Context, in *ResolveGroupRequest, opts ...grpc.CallOption) (*ConversationResponse, error) {
	return invoke[ConversationResponse](ctx, c.cc, ChatService_ResolveGroup_FullMethodName, in, opts)
}

func (c *chatServiceClient) OpenConversation(ctx context.Context, in *OpenConversationRequest, opts ...grpc.CallOption) (*OpenConversationResponse, error) {
	return invoke[OpenConversationResponse](ctx, c.cc, ChatService_OpenConversation_FullMethodName, in, opts)
}

func (c *chatServiceClient) ListConversations(ctx context.Context, in *ListConversationsRequest, opts ...grpc.CallOption) (*ListConversationsResponse, error) {
	return invoke[ListConversationsResponse](ctx, c.cc, ChatService_ListConversations_FullMethodName, in, opts)
}

func (c *chatServiceClient) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*SendMessageResponse, error) {
	return invoke[SendMessageResponse](ctx, c.cc, ChatService_SendMessage_FullMethodName, in, opts)
}

func (c *chatServiceClient) History(ctx context.Context, in *HistoryRequest, opts ...grpc.CallOption) (*HistoryResponse, error) {
	return invoke[HistoryResponse](ctx, c.cc, ChatService_History_FullMethodName, in, opts)
}
