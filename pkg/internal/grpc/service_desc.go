package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const PostServiceName = "proto.PostService"

type PostServiceServer interface {
	CreateTopic(context.Context, *CreateTopicRequest) (*CreatedResponse, error)
	UpdateTopic(context.Context, *UpdateTopicRequest) (*UpdatedResponse, error)
	DeleteTopic(context.Context, *DeleteOneRequest) (*DeletedResponse, error)
	DeleteTopics(context.Context, *DeleteManyRequest) (*DeletedResponse, error)
	RestoreTopic(context.Context, *RestoreOneRequest) (*RestoredResponse, error)
	RestoreTopics(context.Context, *RestoreManyRequest) (*RestoredResponse, error)
	PermanentlyDeleteTopic(context.Context, *PermanentlyDeleteOneRequest) (*DeletedResponse, error)
	PermanentlyDeleteTopics(context.Context, *PermanentlyDeleteManyRequest) (*DeletedResponse, error)
	GetAllTopicsAdmin(context.Context, *GetAllTopicsAdminRequest) (*TopicsAdminResponse, error)
	CreatePost(context.Context, *CreatePostRequest) (*CreatedResponse, error)
}

// unaryMethod builds a method descriptor the same way generated stubs do.
func unaryMethod[Req, Resp any](name string, call func(PostServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PostServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + PostServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(PostServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var PostServiceDesc = grpc.ServiceDesc{
	ServiceName: PostServiceName,
	HandlerType: (*PostServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("CreateTopic", PostServiceServer.CreateTopic),
		unaryMethod("UpdateTopic", PostServiceServer.UpdateTopic),
		unaryMethod("DeleteTopic", PostServiceServer.DeleteTopic),
		unaryMethod("DeleteTopics", PostServiceServer.DeleteTopics),
		unaryMethod("RestoreTopic", PostServiceServer.RestoreTopic),
		unaryMethod("RestoreTopics", PostServiceServer.RestoreTopics),
		unaryMethod("PermanentlyDeleteTopic", PostServiceServer.PermanentlyDeleteTopic),
		unaryMethod("PermanentlyDeleteTopics", PostServiceServer.PermanentlyDeleteTopics),
		unaryMethod("GetAllTopicsAdmin", PostServiceServer.GetAllTopicsAdmin),
		unaryMethod("CreatePost", PostServiceServer.CreatePost),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "post.proto",
}
