package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Durganjali-sidda/CBTS/internal/types"
)

func GetCurrentActor(ctx *gin.Context) (types.Actor, error) {
	value, exists := ctx.Get(types.ContextActorKey)

	if !exists {
		return types.Actor{}, fmt.Errorf("user not authenticated")
	}

	actor, ok := value.(types.Actor)

	if !ok {
		return types.Actor{}, fmt.Errorf("invalid actor type in context")
	}

	return actor, nil
}
