package domain

// Mensajes visibles para el usuario. Los textos son parte del contrato con la interfaz
// y con los tests; no cambiarlos sin actualizar ambos.
const (
	MsgErrorConexion = "Error de conexión. Verifica tu conexión a internet y vuelve a intentarlo."

	// Alta y edición de productos
	MsgNombreObligatorio = "El nombre del producto es obligatorio."
	MsgPrecioInvalido    = "El precio debe ser mayor que 0."
	MsgStockInvalido     = "La cantidad mínima es 1."
	MsgStockNegativo     = "El stock no puede ser negativo."
	MsgUmbralInvalido    = "El umbral mínimo debe ser mayor que 0."
	MsgUmbralSuperaStock = "El umbral mínimo no puede superar la cantidad en stock."
	MsgNombreDuplicado   = "El nombre del producto ya existe. Por favor, elige otro nombre."
	MsgErrorAltaProducto = "Error al agregar el producto, inténtalo de nuevo."
	MsgErrorGuardar      = "Error al guardar el producto, inténtalo de nuevo."
	MsgErrorEliminarProd = "Error al eliminar el producto, inténtalo de nuevo."
	MsgSinProductos      = "No se encontraron productos."
	MsgErrorProductos    = "Error al obtener los productos. Por favor, inténtalo de nuevo más tarde."

	// Composición de pedidos
	MsgCantidadNoNumero      = "La cantidad debe ser un número."
	MsgCantidadNoEntera      = "La cantidad debe ser un número entero."
	MsgCantidadSuperaStock   = "La cantidad solicitada supera el stock disponible."
	MsgConfirmarQuitar       = "¿Estás seguro de que deseas eliminar este producto?"
	MsgConfirmarVaciar       = "¿Estás seguro de que deseas eliminar TODOS los productos?"
	MsgPedidoVacio           = "El pedido no contiene productos."
	MsgErrorRegistrarPedido  = "No se pudo registrar el pedido debido a un problema de stock."
	MsgErrorActualizarPedido = "No se pudo actualizar el pedido."
	MsgPedidoRegistrado      = "Pedido registrado con éxito"
	MsgPedidoActualizado     = "Pedido actualizado con éxito"

	// Historial de pedidos
	MsgSinPedidos             = "No se encontraron pedidos."
	MsgErrorHistorial         = "Error al obtener el historial de pedidos. Por favor, inténtalo de nuevo más tarde."
	MsgBusquedaPedidoInvalida = "Número de pedido inválido. Solo se permiten números."
	MsgConfirmarEliminarPed   = "¿Estás seguro de que deseas eliminar este pedido?"
	MsgConfirmarDevolverStock = "¿Deseas devolver el stock de los productos de este pedido?"
	MsgEliminarSinConexion    = "No se pudo eliminar el pedido debido a una pérdida de conexión. Verifica tu conexión e inténtalo de nuevo."
	MsgErrorEliminarPedido    = "Error al eliminar pedido: "
	MsgErrorDesconocido       = "Error desconocido"

	// Solicitudes de reposición
	MsgSinSolicitudes         = "No se encontraron solicitudes pendientes."
	MsgErrorSolicitudes       = "Error al obtener las solicitudes. Por favor, inténtalo de nuevo más tarde."
	MsgPromptRecepcion        = "¿Cuántas unidades recibirás para %s?"
	MsgProductoCompletado     = "El producto %s ya no tiene unidades pendientes por recibir."
	MsgRecepcionInvalida      = "Cantidad inválida. Por favor, ingresa un número válido."
	MsgCantidadInvalida       = "Cantidad inválida."
	MsgSolicitudNoEncontrada  = "Error: No se encontró la solicitud."
	MsgErrorRecepcion         = "Ocurrió un error al procesar la solicitud. Inténtalo de nuevo."
	MsgConfirmarReposicion    = "El stock de %s (%d) está por debajo del umbral (%d). ¿Deseas crear una solicitud de reposición?"
	MsgSolicitudCreada        = "Solicitud de reposición creada para %d producto(s)."
	MsgErrorCrearSolicitud    = "No se pudo crear la solicitud de reposición."
	MsgErrorEliminarSolicitud = "Error al eliminar la solicitud, inténtalo de nuevo."
)
